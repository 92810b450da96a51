package runner

import (
	"context"
	"fmt"

	"github.com/gh-nvat/commitview/src/pkg/github"
	"github.com/gh-nvat/commitview/src/pkg/template"
	"github.com/gh-nvat/commitview/src/pkg/view"
)

// RunnerGitHub reads commits from the GitHub API
type RunnerGitHub struct {
	RunnerBase
}

// make RunnerGitHub implement RunnerInterface
var _ RunnerInterface = (*RunnerGitHub)(nil)

func NewRunnerGitHub(
	ctx context.Context,
	options *Options,
	ghclient github.GitHubClient,
	renderer *template.Renderer,
) (*RunnerGitHub, error) {
	if ghclient == nil {
		return nil, fmt.Errorf("GitHub client is not initialized")
	}
	baseRunner, err := NewRunnerBase(ctx, options, ghclient, renderer)
	if err != nil {
		return nil, err
	}
	return &RunnerGitHub{
		RunnerBase: *baseRunner,
	}, nil
}

func (r *RunnerGitHub) Initialize() error {
	if err := r.RunnerBase.Initialize(); err != nil {
		return err
	}
	c := r.Options.Coords
	logger.WithField("url", github.CommitURL(c.Owner, c.Repo, c.CommitOID)).Info("Reading commit from GitHub")
	return nil
}

func (r *RunnerGitHub) Load() error {
	return r.RunnerBase.Load()
}

func (r *RunnerGitHub) Process() error {
	return r.RunnerBase.Process()
}

func (r *RunnerGitHub) Output(page view.Page) error {
	return r.RunnerBase.Output(page)
}
