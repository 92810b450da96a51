package runner

import (
	"context"

	"github.com/gh-nvat/commitview/src/pkg/repoapi"
	"github.com/gh-nvat/commitview/src/pkg/template"
	"github.com/gh-nvat/commitview/src/pkg/view"
)

// RunnerService reads commits from the repository-browsing service
type RunnerService struct {
	RunnerBase
}

// make RunnerService implement RunnerInterface
var _ RunnerInterface = (*RunnerService)(nil)

func NewRunnerService(
	ctx context.Context,
	options *Options,
	renderer *template.Renderer,
) (*RunnerService, error) {
	client, err := repoapi.NewClient(repoapi.Options{
		BaseURL: options.BaseURL,
		Token:   options.Token,
		Timeout: options.Timeout,
	})
	if err != nil {
		return nil, err
	}
	baseRunner, err := NewRunnerBase(ctx, options, client, renderer)
	if err != nil {
		return nil, err
	}
	return &RunnerService{
		RunnerBase: *baseRunner,
	}, nil
}

func (r *RunnerService) Initialize() error {
	logger.WithField("baseURL", r.Options.BaseURL).Debug("Using repository service")
	return r.RunnerBase.Initialize()
}

func (r *RunnerService) Load() error {
	return r.RunnerBase.Load()
}

func (r *RunnerService) Process() error {
	return r.RunnerBase.Process()
}

func (r *RunnerService) Output(page view.Page) error {
	return r.RunnerBase.Output(page)
}
