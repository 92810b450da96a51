package diff

import (
	"fmt"
	"testing"

	"github.com/gh-nvat/commitview/src/pkg/models"
)

// ExampleClassify demonstrates first-character classification
func ExampleClassify() {
	for _, content := range []string{"+x", "-x", "x", "", " -x"} {
		fmt.Printf("%q %s\n", content, Classify(content))
	}
	// Output:
	// "+x" addition
	// "-x" removal
	// "x" context
	// "" context
	// " -x" context
}

// ExampleBuild demonstrates how a diff becomes sections, blocks and rows
func ExampleBuild() {
	files := []models.FileDiff{
		{
			HeadFile: models.HeadFile{Path: "main.go"},
			Hunks: []models.Hunk{
				{
					Header: "@@ -1,2 +1,2 @@",
					Lines: []models.DiffLine{
						{Content: "-old", BaseLineNumber: models.LineNumber(1)},
						{Content: "+new", HeadLineNumber: models.LineNumber(1)},
						{Content: " same", BaseLineNumber: models.LineNumber(2), HeadLineNumber: models.LineNumber(2)},
					},
				},
			},
		},
	}

	p := Build(files)
	for _, row := range p.Sections[0].Blocks[0].Rows {
		fmt.Printf("[%s][%s] %s %q\n", row.BaseLabel(), row.HeadLabel(), row.Kind, row.Content)
	}
	// Output:
	// [1][  ] removal "-old"
	// [  ][1] addition "+new"
	// [2][2] context " same"
}

// TestBuild_PreservesOrder checks that files, hunks and lines are never re-sorted
func TestBuild_PreservesOrder(t *testing.T) {
	files := []models.FileDiff{
		{HeadFile: models.HeadFile{Path: "z.go"}, Hunks: []models.Hunk{
			{Header: "@@ -5 +5 @@", Lines: []models.DiffLine{{Content: " b"}, {Content: " a"}}},
			{Header: "@@ -1 +1 @@", Lines: []models.DiffLine{{Content: " c"}}},
		}},
		{HeadFile: models.HeadFile{Path: "a.go"}},
	}

	p := Build(files)

	if got := p.Paths(); len(got) != 2 || got[0] != "z.go" || got[1] != "a.go" {
		t.Fatalf("Paths() = %v, want [z.go a.go]", got)
	}
	if p.Sections[0].Blocks[0].Header != "@@ -5 +5 @@" {
		t.Errorf("first block header = %q", p.Sections[0].Blocks[0].Header)
	}
	if p.Sections[0].Blocks[0].Rows[0].Content != " b" {
		t.Errorf("first row = %q, want \" b\"", p.Sections[0].Blocks[0].Rows[0].Content)
	}
	if p.Sections[1].Index != 1 {
		t.Errorf("second section index = %d, want 1", p.Sections[1].Index)
	}
	if p.Sections[0].RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", p.Sections[0].RowCount())
	}
}

func TestBuild_Empty(t *testing.T) {
	p := Build(nil)
	if !p.Empty() {
		t.Error("Build(nil) should be empty")
	}
	var nilP *Presentation
	if !nilP.Empty() {
		t.Error("nil presentation should be empty")
	}
	if nilP.Paths() != nil {
		t.Error("nil presentation should have no paths")
	}
}

func TestBuild_Stats(t *testing.T) {
	files := []models.FileDiff{
		{HeadFile: models.HeadFile{Path: "a"}, Hunks: []models.Hunk{{Lines: []models.DiffLine{
			{Content: "+1"}, {Content: "+2"}, {Content: "-3"}, {Content: " 4"},
		}}}},
		{HeadFile: models.HeadFile{Path: "b"}, Hunks: []models.Hunk{{Lines: []models.DiffLine{
			{Content: "-5"},
		}}}},
	}

	p := Build(files)

	if p.Sections[0].Stats != (Stats{Added: 2, Removed: 1}) {
		t.Errorf("section a stats = %+v", p.Sections[0].Stats)
	}
	if p.Stats != (Stats{Added: 2, Removed: 2}) {
		t.Errorf("total stats = %+v", p.Stats)
	}
	if p.Stats.Total() != 4 {
		t.Errorf("Total() = %d, want 4", p.Stats.Total())
	}
}

func TestRow_Labels(t *testing.T) {
	tests := []struct {
		name string
		n    *int
		want string
	}{
		{name: "absent", n: nil, want: "  "},
		{name: "zero is blank", n: models.LineNumber(0), want: "  "},
		{name: "number", n: models.LineNumber(42), want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{BaseLine: tt.n, HeadLine: tt.n}
			if row.BaseLabel() != tt.want || row.HeadLabel() != tt.want {
				t.Errorf("labels = %q/%q, want %q", row.BaseLabel(), row.HeadLabel(), tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		content string
		want    Kind
	}{
		{"+x", Addition},
		{"-x", Removal},
		{"x", Context},
		{"", Context},
		{"+", Addition},
		{"-", Removal},
		{" +x", Context},
		{"\\ No newline at end of file", Context},
		{"++counter", Addition},
		{"--flag", Removal},
	}

	for _, tt := range tests {
		if got := Classify(tt.content); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}
