// Package view composes the commit page from loaded state. Compose is a pure
// function; renderers (terminal, markdown, html) only lay out the Page.
package view

import (
	"time"

	"github.com/gh-nvat/commitview/src/pkg/diff"
	"github.com/gh-nvat/commitview/src/pkg/disclosure"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/timefmt"
)

const (
	LoadingPlaceholder = "Loading file changes..."
	EmptyPlaceholder   = "No file changes detected."
	UnknownAuthor      = "Unknown Author"
)

// FileListState selects which branch of the file list is shown
type FileListState int

const (
	FilesLoading FileListState = iota
	FilesEmpty
	FilesReady
)

func (s FileListState) String() string {
	switch s {
	case FilesLoading:
		return "loading"
	case FilesEmpty:
		return "empty"
	default:
		return "ready"
	}
}

// Input is everything the page depends on
type Input struct {
	Coords       models.Coordinates
	Commit       *models.CommitDescriptor
	Presentation *diff.Presentation
	Loading      bool
	Disclosure   *disclosure.State
	Now          time.Time
}

// Page is the composed commit page
type Page struct {
	Coords models.Coordinates

	// Nil when no descriptor is loaded; the whole block is hidden then
	Metadata *Metadata

	Files FileList
}

// Metadata is the commit header block
type Metadata struct {
	Message     string
	AuthorName  string
	AuthoredAgo string

	// Nil when the commit was committed by its author at the authoring time
	Committer *Committer

	CommitOID string

	// First parent only; merge commits show one parent
	ParentOID string
}

// Committer is the optional "Committed by" line
type Committer struct {
	Name         string
	CommittedAgo string
}

// FileList is the diff part of the page
type FileList struct {
	State       FileListState
	Placeholder string
	Sections    []SectionView
	Stats       diff.Stats
}

// SectionView is one collapsible file section
type SectionView struct {
	Index    int
	Path     string
	Expanded bool
	Stats    diff.Stats

	// Always populated; Expanded only says whether the body is shown
	Blocks []diff.Block
}

// Compose builds the page for the given state
func Compose(in Input) Page {
	return Page{
		Coords:   in.Coords,
		Metadata: composeMetadata(in.Commit, in.Coords.CommitOID, in.Now),
		Files:    composeFiles(in.Presentation, in.Loading, in.Disclosure),
	}
}

func composeMetadata(c *models.CommitDescriptor, oid string, now time.Time) *Metadata {
	if c == nil {
		return nil
	}

	m := &Metadata{
		Message:     c.Message,
		AuthorName:  c.Author.Name,
		AuthoredAgo: relative(c.Author.Date, now),
		CommitOID:   oid,
		ParentOID:   c.FirstParent(),
	}
	if m.AuthorName == "" {
		m.AuthorName = UnknownAuthor
	}
	if c.Committer != nil && !c.Committer.SameAs(c.Author) {
		m.Committer = &Committer{
			Name:         c.Committer.Name,
			CommittedAgo: relative(c.Committer.Date, now),
		}
	}
	return m
}

// A missing timestamp renders no relative time at all.
func relative(ts models.Timestamp, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return timefmt.DaysAgo(ts.Time, now)
}

func composeFiles(p *diff.Presentation, loading bool, state *disclosure.State) FileList {
	switch {
	case loading:
		return FileList{State: FilesLoading, Placeholder: LoadingPlaceholder}
	case p.Empty():
		return FileList{State: FilesEmpty, Placeholder: EmptyPlaceholder}
	}

	list := FileList{
		State:    FilesReady,
		Sections: make([]SectionView, 0, len(p.Sections)),
		Stats:    p.Stats,
	}
	for _, s := range p.Sections {
		sv := SectionView{
			Index:    s.Index,
			Path:     s.Path,
			Expanded: state.IsOpen(s.Index),
			Stats:    s.Stats,
			Blocks:   s.Blocks,
		}
		list.Sections = append(list.Sections, sv)
	}
	return list
}

// HasMetadata reports whether the metadata block is shown
func (p Page) HasMetadata() bool {
	return p.Metadata != nil
}
