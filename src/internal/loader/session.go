package loader

import (
	"github.com/gh-nvat/commitview/src/pkg/diff"
	"github.com/gh-nvat/commitview/src/pkg/disclosure"
	"github.com/gh-nvat/commitview/src/pkg/models"
)

// Policy holds the behaviors that can be switched from config
type Policy struct {
	// ClearOnNavigate drops the previous commit's metadata and files
	// as soon as the coordinates change.
	ClearOnNavigate bool
	// DiscardStale drops responses issued for an older navigation.
	// When false the last response to arrive wins.
	DiscardStale bool
	Keying       disclosure.Keying
}

// DefaultPolicy is used when no config is given
func DefaultPolicy() Policy {
	return Policy{
		ClearOnNavigate: true,
		DiscardStale:    true,
		Keying:          disclosure.KeyByPosition,
	}
}

// Ticket identifies one round of requests
type Ticket struct {
	Coords     models.Coordinates
	Generation uint64
}

// Session owns the state of one commit page. It is not safe for concurrent
// use; the caller serializes every call.
type Session struct {
	policy Policy

	coords     models.Coordinates
	generation uint64

	commit       *models.CommitDescriptor
	files        []models.FileDiff
	presentation *diff.Presentation
	loading      bool
	disclosure   *disclosure.State
}

// NewSession creates an empty session
func NewSession(policy Policy) *Session {
	return &Session{
		policy:       policy,
		presentation: diff.Build(nil),
		disclosure:   disclosure.New(policy.Keying),
	}
}

// Navigate points the session at new coordinates. It returns false and
// changes nothing when coords are incomplete or unchanged.
func (s *Session) Navigate(coords models.Coordinates) (Ticket, bool) {
	if !coords.Valid() || coords == s.coords {
		return Ticket{}, false
	}
	s.coords = coords
	if s.policy.ClearOnNavigate {
		s.commit = nil
		s.replaceFiles(nil)
	}
	return s.begin(), true
}

// Reload issues a new round of requests for the current coordinates
// without clearing what is shown.
func (s *Session) Reload() (Ticket, bool) {
	if !s.coords.Valid() {
		return Ticket{}, false
	}
	return s.begin(), true
}

func (s *Session) begin() Ticket {
	s.generation++
	s.loading = true
	logger.WithField("commit", s.coords.String()).WithField("generation", s.generation).Debug("Starting load")
	return s.Ticket()
}

// Ticket returns the ticket of the current round
func (s *Session) Ticket() Ticket {
	return Ticket{Coords: s.coords, Generation: s.generation}
}

// ApplyCommit stores a commit result. A failure leaves the previous descriptor.
// It reports whether the result was accepted.
func (s *Session) ApplyCommit(r CommitResult) bool {
	if s.stale(r.Ticket) {
		logger.WithField("commit", r.Ticket.Coords.String()).Debug("Dropping stale commit response")
		return false
	}
	if r.Err != nil {
		return false
	}
	s.commit = r.Commit
	return true
}

// ApplyDiff stores a diff result. Loading ends either way; a failure
// leaves the previous files in place.
func (s *Session) ApplyDiff(r DiffResult) bool {
	if s.stale(r.Ticket) {
		logger.WithField("commit", r.Ticket.Coords.String()).Debug("Dropping stale diff response")
		return false
	}
	s.loading = false
	if r.Err != nil {
		return false
	}
	s.replaceFiles(r.Files)
	return true
}

func (s *Session) stale(t Ticket) bool {
	return s.policy.DiscardStale && t.Generation != s.generation
}

func (s *Session) replaceFiles(files []models.FileDiff) {
	s.files = files
	s.presentation = diff.Build(files)
	s.disclosure.Reset(s.presentation.Paths())
}

// Toggle flips the expansion of file section i
func (s *Session) Toggle(i int) bool {
	return s.disclosure.Toggle(i)
}

// SetAll expands or collapses every file section
func (s *Session) SetAll(open bool) {
	s.disclosure.SetAll(open)
}

func (s *Session) Coords() models.Coordinates { return s.coords }
func (s *Session) Generation() uint64 { return s.generation }
func (s *Session) Commit() *models.CommitDescriptor { return s.commit }
func (s *Session) Files() []models.FileDiff { return s.files }
func (s *Session) Presentation() *diff.Presentation { return s.presentation }
func (s *Session) Loading() bool { return s.loading }
func (s *Session) Disclosure() *disclosure.State { return s.disclosure }
