package repoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gh-nvat/commitview/src/pkg/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var logger = log.WithField("package", "repoapi")

const DefaultBaseURL = "http://localhost:5000"

// ErrEmptyResponse is returned when the commit-info endpoint answers with no descriptor
var ErrEmptyResponse = errors.New("commit response contained no commit")

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// RepositoryClient defines the read operations of the repository-browsing service
type RepositoryClient interface {
	// GetCommit retrieves the commit descriptor
	GetCommit(ctx context.Context, coords models.Coordinates) (*models.CommitDescriptor, error)
	// GetDiff retrieves the per-file diff of the commit
	GetDiff(ctx context.Context, coords models.Coordinates) ([]models.FileDiff, error)
}

// Options configures a Client
type Options struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UserAgent string

	// HTTPClient overrides the transport; Token and Timeout are ignored when set
	HTTPClient *http.Client
}

// Client talks to the repository-browsing service over HTTP
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Ensure Client implements RepositoryClient
var _ RepositoryClient = (*Client)(nil)

// NewClient creates a new repository service client
func NewClient(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		if opts.Token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
			httpClient = oauth2.NewClient(context.Background(), ts)
		} else {
			httpClient = &http.Client{}
		}
		httpClient.Timeout = opts.Timeout
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "commitview"
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: userAgent,
	}, nil
}

// GetCommit fetches GET /repositories/{owner}/{repo}/commits/{oid}.
// The endpoint answers with an array; its first element is the descriptor.
func (c *Client) GetCommit(ctx context.Context, coords models.Coordinates) (*models.CommitDescriptor, error) {
	var commits []*models.CommitDescriptor
	if err := c.getJSON(ctx, c.commitURL(coords), &commits); err != nil {
		return nil, fmt.Errorf("failed to get commit info: %w", err)
	}
	if len(commits) == 0 || commits[0] == nil {
		return nil, ErrEmptyResponse
	}
	return commits[0], nil
}

// GetDiff fetches GET /repositories/{owner}/{repo}/commits/{oid}/diff
func (c *Client) GetDiff(ctx context.Context, coords models.Coordinates) ([]models.FileDiff, error) {
	var files []models.FileDiff
	if err := c.getJSON(ctx, c.commitURL(coords, "diff"), &files); err != nil {
		return nil, fmt.Errorf("failed to get diff: %w", err)
	}
	if files == nil {
		files = []models.FileDiff{}
	}
	return files, nil
}

func (c *Client) commitURL(coords models.Coordinates, extra ...string) string {
	elems := []string{
		"repositories",
		url.PathEscape(coords.Owner),
		url.PathEscape(coords.Repo),
		"commits",
		url.PathEscape(coords.CommitOID),
	}
	elems = append(elems, extra...)
	return c.baseURL.JoinPath(elems...).String()
}

func (c *Client) getJSON(ctx context.Context, target string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger.WithField("url", target).Debug("GET")
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	logger.WithField("url", target).WithField("status", resp.StatusCode).WithField("elapsed", time.Since(start)).Debug("Response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method:     http.MethodGet,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
