// Package loader fetches commit metadata and file diffs and owns the view state
// they populate.
package loader

import (
	"context"
	"errors"

	"github.com/gh-nvat/commitview/src/pkg/github"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/repoapi"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "loader")

// ErrIncompleteCoordinates is returned by Load when owner, repo or commit is missing
var ErrIncompleteCoordinates = errors.New("incomplete commit coordinates")

// Source is the read side of a repository backend
type Source interface {
	GetCommit(ctx context.Context, coords models.Coordinates) (*models.CommitDescriptor, error)
	GetDiff(ctx context.Context, coords models.Coordinates) ([]models.FileDiff, error)
}

var (
	_ Source = (repoapi.RepositoryClient)(nil)
	_ Source = (github.GitHubClient)(nil)
)
