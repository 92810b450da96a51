package github

import (
	"context"
	"fmt"
	"os"

	"github.com/gh-nvat/commitview/src/pkg/diff"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var logger = log.WithField("package", "github")

// GitHubClient defines the commit read operations served from the GitHub API
type GitHubClient interface {
	// GetCommit retrieves commit metadata
	GetCommit(ctx context.Context, coords models.Coordinates) (*models.CommitDescriptor, error)
	// GetDiff retrieves the per-file diff of a commit
	GetDiff(ctx context.Context, coords models.Coordinates) ([]models.FileDiff, error)
}

// Client handles GitHub API interactions using go-github
type Client struct {
	client *github.Client
}

// Ensure Client implements GitHubClient
var _ GitHubClient = (*Client)(nil)

// TokenFromEnv returns GH_TOKEN, falling back to GITHUB_TOKEN
func TokenFromEnv() string {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	return token
}

// NewClient creates a new GitHub client. An empty token gives an
// unauthenticated client, which works for public repositories at a low rate limit.
func NewClient(token string) *Client {
	if token == "" {
		logger.Warn("GitHub token not found, using unauthenticated client. Set GH_TOKEN or GITHUB_TOKEN environment variable")
		return &Client{client: github.NewClient(nil)}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Client{client: github.NewClient(tc)}
}

// NewClientWith wraps an existing go-github client
func NewClientWith(client *github.Client) *Client {
	return &Client{client: client}
}

// GetCommit retrieves commit metadata
func (c *Client) GetCommit(ctx context.Context, coords models.Coordinates) (*models.CommitDescriptor, error) {
	rc, _, err := c.client.Repositories.GetCommit(ctx, coords.Owner, coords.Repo, coords.CommitOID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit: %w", err)
	}
	logger.WithField("commit", coords.String()).Debug("Fetched commit")
	return toCommitDescriptor(rc), nil
}

// GetDiff retrieves the per-file diff of a commit.
// Files keep the API order; files without a patch (binary or too large) have no hunks.
func (c *Client) GetDiff(ctx context.Context, coords models.Coordinates) ([]models.FileDiff, error) {
	rc, _, err := c.client.Repositories.GetCommit(ctx, coords.Owner, coords.Repo, coords.CommitOID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit diff: %w", err)
	}
	files := toFileDiffs(rc.Files)
	for _, f := range rc.Files {
		warnIfTruncated(f)
	}
	logger.WithField("commit", coords.String()).WithField("files", len(files)).Debug("Fetched commit diff")
	return files, nil
}

func toCommitDescriptor(rc *github.RepositoryCommit) *models.CommitDescriptor {
	commit := rc.GetCommit()

	desc := &models.CommitDescriptor{
		Message: commit.GetMessage(),
		Author:  toSignature(commit.GetAuthor()),
		Parents: make([]models.ParentRef, 0, len(rc.Parents)),
	}
	if commit.Committer != nil {
		committer := toSignature(commit.GetCommitter())
		desc.Committer = &committer
	}
	for _, p := range rc.Parents {
		desc.Parents = append(desc.Parents, models.ParentRef{OID: p.GetSHA()})
	}
	return desc
}

func toSignature(a *github.CommitAuthor) models.Signature {
	return models.Signature{
		Name: a.GetName(),
		Date: models.NewTimestamp(a.GetDate().Time),
	}
}

func toFileDiffs(files []*github.CommitFile) []models.FileDiff {
	result := make([]models.FileDiff, 0, len(files))
	for _, f := range files {
		fd := models.FileDiff{
			HeadFile: models.HeadFile{Path: f.GetFilename()},
			Hunks:    diff.ParsePatch(f.GetPatch()),
		}
		if fd.Hunks == nil {
			fd.Hunks = []models.Hunk{}
		}
		result = append(result, fd)
	}
	return result
}

// GitHub omits or cuts the patch of large files; the counts it reports still cover the whole file
func warnIfTruncated(f *github.CommitFile) {
	added, removed, _ := diff.CalcLineChangesFromPatch(f.GetPatch())
	if added == f.GetAdditions() && removed == f.GetDeletions() {
		return
	}
	logger.WithField("file", f.GetFilename()).
		WithField("additions", f.GetAdditions()).
		WithField("deletions", f.GetDeletions()).
		WithField("patchAdditions", added).
		WithField("patchDeletions", removed).
		Warn("Patch is incomplete, showing the lines GitHub returned")
}
