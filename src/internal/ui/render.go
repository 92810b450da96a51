package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/gh-nvat/commitview/src/pkg/diff"
	"github.com/gh-nvat/commitview/src/pkg/view"
)

const (
	headerHeight = 1
	footerHeight = 1
)

func (m Model) renderHeader() string {
	c := m.session.Coords()
	return m.styles.title.Render(fmt.Sprintf("%s/%s", c.Owner, c.Repo)) + " " + m.styles.muted.Render(c.ShortOID())
}

func (m Model) renderFooter() string {
	if m.status != "" {
		return m.styles.status.Render(m.status)
	}
	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return m.styles.muted.Render(strings.Join(help, " • "))
}

// renderContent lays out the page and returns the line of each section header
func (m Model) renderContent(page view.Page) (string, []int) {
	var lines []string

	if md := page.Metadata; md != nil {
		for _, l := range strings.Split(md.Message, "\n") {
			lines = append(lines, m.styles.message.Render(printable(l)))
		}
		lines = append(lines, "")
		lines = append(lines, printable(md.AuthorName)+" authored"+suffix(md.AuthoredAgo))
		if md.Committer != nil {
			lines = append(lines, "Committed by "+printable(md.Committer.Name)+suffix(md.Committer.CommittedAgo))
		}
		lines = append(lines, m.styles.muted.Render("Commit ")+printable(md.CommitOID))
		if md.ParentOID != "" {
			lines = append(lines, m.styles.muted.Render("Parent ")+printable(md.ParentOID))
		}
		lines = append(lines, "")
	}

	if page.Files.Placeholder != "" {
		lines = append(lines, m.styles.placeholder.Render(page.Files.Placeholder))
		return m.fit(lines), nil
	}

	stats := page.Files.Stats
	lines = append(lines, m.styles.muted.Render(fmt.Sprintf("%d files changed, +%d -%d", len(page.Files.Sections), stats.Added, stats.Removed)))

	sectionLines := make([]int, 0, len(page.Files.Sections))
	for _, s := range page.Files.Sections {
		sectionLines = append(sectionLines, len(lines))
		lines = append(lines, m.renderSectionHeader(s))
		if !s.Expanded {
			continue
		}
		for _, b := range s.Blocks {
			lines = append(lines, m.styles.hunk.Render(printable(b.Header)))
			for _, r := range b.Rows {
				lines = append(lines, m.renderRow(r))
			}
		}
	}
	return m.fit(lines), sectionLines
}

// fit truncates every line to the viewport width so that one content line is
// one screen line and section offsets stay exact.
func (m Model) fit(lines []string) string {
	if m.viewport.Width > 0 {
		clip := lipgloss.NewStyle().MaxWidth(m.viewport.Width)
		for i, l := range lines {
			lines[i] = clip.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSectionHeader(s view.SectionView) string {
	marker := "▸"
	if s.Expanded {
		marker = "▾"
	}
	header := fmt.Sprintf("%s %s  +%d -%d", marker, printable(s.Path), s.Stats.Added, s.Stats.Removed)
	if s.Index == m.cursor {
		return m.styles.cursor.Render(header)
	}
	return m.styles.section.Render(header)
}

func (m Model) renderRow(r diff.Row) string {
	rs := m.styles.row(r)
	return rs.base.Render(fmt.Sprintf("%4s ", r.BaseLabel())) +
		rs.head.Render(fmt.Sprintf("%4s ", r.HeadLabel())) +
		rs.row.Render(printable(r.Content))
}

// printable drops control characters such as ESC so that repository text
// reaches the terminal as inert text. Tabs become spaces.
func printable(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

func suffix(ago string) string {
	if ago == "" {
		return ""
	}
	return " " + ago
}
