package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gh-nvat/commitview/src/internal/loader"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/template"
	"github.com/gh-nvat/commitview/src/pkg/view"

	log "github.com/sirupsen/logrus"
)

var logger *log.Entry = log.WithFields(log.Fields{
	"package": "runner",
})

const ReportFileName = "report.json"

type RunnerBase struct {
	Context context.Context
	Options *Options

	RunMode string

	Source   loader.Source
	Session  *loader.Session
	Renderer *template.Renderer

	now func() time.Time
}

// make RunnerBase implement RunnerInterface
var _ RunnerInterface = (*RunnerBase)(nil)

func NewRunnerBase(
	ctx context.Context,
	options *Options,
	source loader.Source,
	renderer *template.Renderer,
) (*RunnerBase, error) {
	if options == nil {
		return nil, fmt.Errorf("options are required")
	}
	runner := &RunnerBase{
		Context:  ctx,
		Options:  options,
		RunMode:  options.RunMode,
		Source:   source,
		Session:  loader.NewSession(options.Policy),
		Renderer: renderer,
		now:      time.Now,
	}
	return runner, nil
}

func (r *RunnerBase) Initialize() error {
	logger.Info("Initializing runner: starting...")

	// if any is nil, return error
	if r.Source == nil || r.Renderer == nil {
		return fmt.Errorf("source and renderer are required")
	}
	if !r.Options.Coords.Valid() {
		return fmt.Errorf("%w: %q", loader.ErrIncompleteCoordinates, r.Options.Coords.String())
	}
	if r.Options.Format == "" {
		r.Options.Format = template.FormatMarkdown
	}

	logger.Info("Initialize runner: done.")
	return nil
}

func (r *RunnerBase) Load() error {
	logger.WithField("commit", r.Options.Coords.String()).Info("Load: starting...")
	if err := loader.Load(r.Context, r.Source, r.Session, r.Options.Coords); err != nil {
		return err
	}
	logger.Info("Load: done.")
	return nil
}

// Page composes the page from the session
func (r *RunnerBase) Page() view.Page {
	return view.Compose(view.Input{
		Coords:       r.Session.Coords(),
		Commit:       r.Session.Commit(),
		Presentation: r.Session.Presentation(),
		Loading:      r.Session.Loading(),
		Disclosure:   r.Session.Disclosure(),
		Now:          r.now(),
	})
}

func (r *RunnerBase) Process() error {
	logger.Info("Process: starting...")

	if err := r.Load(); err != nil {
		return err
	}
	if r.Options.ExpandAll {
		r.Session.SetAll(true)
	}

	page := r.Page()
	logger.WithField("files", len(page.Files.Sections)).WithField("state", page.Files.State.String()).Debug("Composed page")

	if err := r.Output(page); err != nil {
		return err
	}
	logger.Info("Process: done.")
	return nil
}

func (r *RunnerBase) Output(page view.Page) error {
	logger.Info("Output: starting...")
	if err := r.outputPage(page); err != nil {
		return err
	}
	if err := r.outputReportJson(); err != nil {
		return err
	}
	logger.Info("Output: done.")
	return nil
}

func (r *RunnerBase) render(page view.Page) (string, error) {
	if r.Options.TemplatesPath != "" {
		return r.Renderer.RenderWithTemplates(r.Options.TemplatesPath, r.Options.Format, page)
	}
	return r.Renderer.Render(r.Options.Format, page)
}

// Writing the rendered page to the output directory, or stdout when none is set
func (r *RunnerBase) outputPage(page view.Page) error {
	content, err := r.render(page)
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if r.Options.OutputDir == "" {
		out := r.Options.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := fmt.Fprint(out, content)
		return err
	}

	if err := os.MkdirAll(r.Options.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filePath := filepath.Join(r.Options.OutputDir, PageFileName(page.Coords, r.Options.Format))
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		logger.WithField("filePath", filePath).WithField("error", err).Error("Failed to write page to file")
		return err
	}
	logger.WithField("filePath", filePath).Info("Written page to file")
	return nil
}

// PageFileName is the output file name of a rendered commit page
func PageFileName(coords models.Coordinates, format template.Format) string {
	return fmt.Sprintf("%s-commit.%s", coords.ShortOID(), format.Ext())
}

// Exporting report json file to output directory if enabled
func (r *RunnerBase) outputReportJson() error {
	if !r.Options.EnableExportReport {
		logger.Info("OutputJson: option was disabled")
		return nil
	}
	if r.Options.OutputDir == "" {
		logger.Warn("OutputJson: no output directory, skipping report")
		return nil
	}
	logger.Info("OutputJson: starting...")

	resultsJson, err := json.Marshal(r.Report())
	if err != nil {
		return err
	}
	filePath := filepath.Join(r.Options.OutputDir, ReportFileName)
	if err := os.WriteFile(filePath, resultsJson, 0644); err != nil {
		logger.WithField("filePath", filePath).WithField("error", err).Error("Failed to write report data to file")
		return err
	}
	logger.WithField("filePath", filePath).Info("Written report data to file")
	return nil
}

// Report summarizes the loaded commit
func (r *RunnerBase) Report() models.CommitReport {
	p := r.Session.Presentation()
	report := models.CommitReport{
		Coordinates:      r.Session.Coords(),
		GeneratedAt:      r.now(),
		Commit:           r.Session.Commit(),
		Files:            make([]models.FileReport, 0, len(p.Sections)),
		AddedLineCount:   p.Stats.Added,
		RemovedLineCount: p.Stats.Removed,
	}
	for _, s := range p.Sections {
		report.Files = append(report.Files, models.FileReport{
			Path:             s.Path,
			HunkCount:        len(s.Blocks),
			AddedLineCount:   s.Stats.Added,
			RemovedLineCount: s.Stats.Removed,
		})
	}
	return report
}
