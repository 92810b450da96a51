package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/gh-nvat/commitview/src/pkg/diff"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/view"
	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "template")

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Format is an output format of the render command
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatMarkdown, FormatHTML, FormatText:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected markdown, html or text)", s)
	}
}

// Ext is the file extension used for templates and output files
func (f Format) Ext() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatText:
		return "txt"
	default:
		return "md"
	}
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// Renderer handles template rendering
type Renderer struct {
	palette view.Palette
	policy  *bluemonday.Policy
}

// NewRenderer creates a new template renderer
func NewRenderer() *Renderer {
	return NewRendererWithPalette(view.DefaultPalette)
}

// NewRendererWithPalette creates a renderer with custom row colors
func NewRendererWithPalette(palette view.Palette) *Renderer {
	return &Renderer{
		palette: palette,
		policy:  bluemonday.UGCPolicy(),
	}
}

func (r *Renderer) funcs() map[string]any {
	return map[string]any{
		"gt":         func(a, b int) bool { return a > b },
		"shortSHA":   models.ShortSHA,
		"swatch":     r.palette.Swatch,
		"pad":        func(s string) string { return fmt.Sprintf("%4s", s) },
		"markdown":   r.renderMarkdown,
		"paletteCSS": r.paletteCSS,
	}
}

// renderMarkdown turns a commit message into sanitized HTML
func (r *Renderer) renderMarkdown(s string) htmltemplate.HTML {
	rs := string(markdown.ToHTML([]byte(s), nil, nil))
	rs = r.policy.Sanitize(rs)
	return htmltemplate.HTML(rs)
}

// paletteCSS emits one rule set per row kind so rows only carry their kind
func (r *Renderer) paletteCSS() htmltemplate.CSS {
	var b strings.Builder
	for _, k := range []diff.Kind{diff.Context, diff.Addition, diff.Removal} {
		s := r.palette.For(k)
		fmt.Fprintf(&b, "tr.row-%s td { background-color: %s; }\n", k, s.Row)
		fmt.Fprintf(&b, "tr.row-%s td.base { background-color: %s; }\n", k, s.BaseColumn)
		fmt.Fprintf(&b, "tr.row-%s td.head { background-color: %s; }\n", k, s.HeadColumn)
	}
	return htmltemplate.CSS(b.String())
}

// Render renders the page with the built-in templates of the format
func (r *Renderer) Render(format Format, page view.Page) (string, error) {
	commitContent, err := defaultTemplates.ReadFile("templates/commit." + format.Ext() + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("no default template for format %s: %w", format, err)
	}
	fileContent, err := defaultTemplates.ReadFile("templates/file." + format.Ext() + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("no default file template for format %s: %w", format, err)
	}
	return r.execute(format, string(commitContent), string(fileContent), page)
}

// RenderWithTemplates renders the page with commit.<ext>.tmpl from templateDir,
// which may include the "file" template from file.<ext>.tmpl
func (r *Renderer) RenderWithTemplates(templateDir string, format Format, page view.Page) (string, error) {
	commitPath := filepath.Join(templateDir, "commit."+format.Ext()+".tmpl")
	filePath := filepath.Join(templateDir, "file."+format.Ext()+".tmpl")

	// Check if all templates exist
	if _, err := os.Stat(commitPath); err != nil {
		return "", fmt.Errorf("commit template not found: %w", err)
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file template not found: %w", err)
	}

	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file template: %w", err)
	}
	commitContent, err := os.ReadFile(commitPath)
	if err != nil {
		return "", fmt.Errorf("failed to read commit template: %w", err)
	}

	logger.WithField("templateDir", templateDir).WithField("format", format).Debug("Rendering with custom templates")
	return r.execute(format, string(commitContent), string(fileContent), page)
}

// RenderString renders a template string with the provided data
func (r *Renderer) RenderString(format Format, templateStr string, data any) (string, error) {
	tmpl, err := r.parse(format, templateStr, "")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) execute(format Format, commitTmpl, fileTmpl string, page view.Page) (string, error) {
	tmpl, err := r.parse(format, commitTmpl, fileTmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// parse builds the main template, with fileTmpl (if any) defined as "file".
// HTML goes through html/template so page content is escaped.
func (r *Renderer) parse(format Format, mainTmpl, fileTmpl string) (executor, error) {
	if format == FormatHTML {
		tmpl := htmltemplate.New("").Funcs(htmltemplate.FuncMap(r.funcs()))
		if fileTmpl != "" {
			if _, err := tmpl.New("file").Parse(fileTmpl); err != nil {
				return nil, fmt.Errorf("failed to parse file template: %w", err)
			}
		}
		main, err := tmpl.New("commit").Parse(mainTmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse commit template: %w", err)
		}
		return main, nil
	}

	tmpl := template.New("").Funcs(template.FuncMap(r.funcs()))
	if fileTmpl != "" {
		if _, err := tmpl.New("file").Parse(fileTmpl); err != nil {
			return nil, fmt.Errorf("failed to parse file template: %w", err)
		}
	}
	main, err := tmpl.New("commit").Parse(mainTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse commit template: %w", err)
	}
	return main, nil
}
