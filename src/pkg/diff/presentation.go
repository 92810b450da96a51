package diff

import (
	"strconv"

	"github.com/gh-nvat/commitview/src/pkg/models"
)

// Presentation is the render-ready form of a commit diff.
// Sections, blocks and rows keep the order of the received data.
type Presentation struct {
	Sections []Section
	Stats    Stats
}

// Section is one file of the diff
type Section struct {
	Index  int
	Path   string
	Blocks []Block
	Stats  Stats
}

// Block is one hunk
type Block struct {
	Header string
	Rows   []Row
}

// Row is one classified diff line. Kind is computed once when the row is built;
// anything styled per line must read it from here.
type Row struct {
	Kind     Kind
	Content  string
	BaseLine *int
	HeadLine *int
}

const blankLineNumber = "  "

// BaseLabel is the base-side line number column text
func (r Row) BaseLabel() string {
	return lineLabel(r.BaseLine)
}

// HeadLabel is the head-side line number column text
func (r Row) HeadLabel() string {
	return lineLabel(r.HeadLine)
}

// Zero renders blank, same as an absent number.
func lineLabel(n *int) string {
	if n == nil || *n == 0 {
		return blankLineNumber
	}
	return strconv.Itoa(*n)
}

// Build transforms raw file diffs into a Presentation
func Build(files []models.FileDiff) *Presentation {
	p := &Presentation{
		Sections: make([]Section, 0, len(files)),
	}

	for i, file := range files {
		section := Section{
			Index:  i,
			Path:   file.HeadFile.Path,
			Blocks: make([]Block, 0, len(file.Hunks)),
		}
		for _, hunk := range file.Hunks {
			block := Block{
				Header: hunk.Header,
				Rows:   make([]Row, 0, len(hunk.Lines)),
			}
			for _, line := range hunk.Lines {
				row := Row{
					Kind:     Classify(line.Content),
					Content:  line.Content,
					BaseLine: line.BaseLineNumber,
					HeadLine: line.HeadLineNumber,
				}
				section.Stats.count(row.Kind)
				block.Rows = append(block.Rows, row)
			}
			section.Blocks = append(section.Blocks, block)
		}
		p.Stats.Add(section.Stats)
		p.Sections = append(p.Sections, section)
	}

	return p
}

// Paths returns the section paths in display order
func (p *Presentation) Paths() []string {
	if p == nil {
		return nil
	}
	paths := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		paths[i] = s.Path
	}
	return paths
}

// Empty reports whether there are no files to show
func (p *Presentation) Empty() bool {
	return p == nil || len(p.Sections) == 0
}

// RowCount returns the number of rows across all blocks of the section
func (s Section) RowCount() int {
	n := 0
	for _, b := range s.Blocks {
		n += len(b.Rows)
	}
	return n
}
