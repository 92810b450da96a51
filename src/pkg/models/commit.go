package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "models")

// CommitDescriptor is the commit metadata served by the commit-info endpoint.
// It is replaced wholesale on every fetch and never partially displayed.
type CommitDescriptor struct {
	Message   string      `json:"message"`
	Author    Signature   `json:"author"`
	Committer *Signature  `json:"committer,omitempty"`
	Parents   []ParentRef `json:"parents"`
}

// Signature is an author or committer identity with its timestamp
type Signature struct {
	Name string    `json:"name"`
	Date Timestamp `json:"date"`
}

// ParentRef references a parent commit
type ParentRef struct {
	OID string `json:"oid"`
}

// SameAs reports whether two signatures carry the same name and the same instant
func (s Signature) SameAs(other Signature) bool {
	return s.Name == other.Name && s.Date.Equal(other.Date.Time)
}

// FirstParent returns the first parent oid, or "" for a root commit
func (c *CommitDescriptor) FirstParent() string {
	if c == nil || len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0].OID
}

// Timestamp is an ISO-8601 timestamp that tolerates the variants repository services emit.
// A value that cannot be read decodes to the zero Timestamp rather than failing
// the enclosing descriptor.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s with the accepted layouts. A value without a zone
// is read as local time.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	*t = Timestamp{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		logger.WithField("value", string(data)).Warn("Timestamp is not a string, ignoring it")
		return nil
	}
	if s == "" {
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		logger.WithError(err).Warn("Unreadable timestamp, ignoring it")
		return nil
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
