package runner

import (
	"io"
	"time"

	"github.com/gh-nvat/commitview/src/internal/loader"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/template"
)

const (
	RunModeService = "service"
	RunModeGitHub  = "github"
)

type Options struct {
	// Run mode
	RunMode string // "service" or "github"

	// Common options
	Coords        models.Coordinates
	Format        template.Format
	TemplatesPath string // optional directory with commit.<ext>.tmpl and file.<ext>.tmpl
	OutputDir     string // empty writes the page to Stdout
	ExpandAll     bool
	Policy        loader.Policy

	EnableExportReport bool

	// Service mode options
	BaseURL string
	Token   string
	Timeout time.Duration

	Stdout io.Writer
}
