package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gh-nvat/commitview/src/pkg/diff"
	"github.com/gh-nvat/commitview/src/pkg/view"
)

const textColor = lipgloss.Color("#24292E")

type rowStyle struct {
	row  lipgloss.Style
	base lipgloss.Style
	head lipgloss.Style
}

type styles struct {
	title       lipgloss.Style
	message     lipgloss.Style
	muted       lipgloss.Style
	section     lipgloss.Style
	cursor      lipgloss.Style
	hunk        lipgloss.Style
	placeholder lipgloss.Style
	status      lipgloss.Style
	rows        map[diff.Kind]rowStyle
}

func newStyles(palette view.Palette) styles {
	s := styles{
		title:       lipgloss.NewStyle().Bold(true),
		message:     lipgloss.NewStyle().Bold(true),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6A737D")),
		section:     lipgloss.NewStyle(),
		cursor:      lipgloss.NewStyle().Reverse(true),
		hunk:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6A737D")).Background(lipgloss.Color("#F1F8FF")),
		placeholder: lipgloss.NewStyle().Italic(true),
		status:      lipgloss.NewStyle().Foreground(lipgloss.Color("#D73A49")),
		rows:        make(map[diff.Kind]rowStyle, 3),
	}
	for _, k := range []diff.Kind{diff.Context, diff.Addition, diff.Removal} {
		sw := palette.For(k)
		s.rows[k] = rowStyle{
			row:  lipgloss.NewStyle().Foreground(textColor).Background(lipgloss.Color(sw.Row)),
			base: lipgloss.NewStyle().Foreground(textColor).Background(lipgloss.Color(sw.BaseColumn)),
			head: lipgloss.NewStyle().Foreground(textColor).Background(lipgloss.Color(sw.HeadColumn)),
		}
	}
	return s
}

// row returns the styles of a row from its memoized kind
func (s styles) row(r diff.Row) rowStyle {
	if rs, ok := s.rows[r.Kind]; ok {
		return rs
	}
	return s.rows[diff.Context]
}
