package runner

import "github.com/gh-nvat/commitview/src/pkg/view"

type RunnerInterface interface {
	// Initialize the runner with necessary context and data
	Initialize() error

	// Load commit metadata and file changes into the session
	Load() error

	// Main routine to process the runner
	Process() error

	// Handling the export
	Output(page view.Page) error
}
