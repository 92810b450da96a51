package view

import (
	"testing"
	"time"

	"github.com/gh-nvat/commitview/src/pkg/diff"
	"github.com/gh-nvat/commitview/src/pkg/disclosure"
	"github.com/gh-nvat/commitview/src/pkg/models"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func signature(name string, daysAgo int) models.Signature {
	return models.Signature{
		Name: name,
		Date: models.NewTimestamp(testNow.Add(-time.Duration(daysAgo) * 24 * time.Hour)),
	}
}

func testCoords() models.Coordinates {
	return models.Coordinates{Owner: "ownerX", Repo: "repoY", CommitOID: "oidZ"}
}

func TestCompose_MetadataVisibility(t *testing.T) {
	page := Compose(Input{Coords: testCoords(), Now: testNow})
	if page.HasMetadata() {
		t.Error("metadata block should be absent without a descriptor")
	}

	page = Compose(Input{
		Coords: testCoords(),
		Commit: &models.CommitDescriptor{Message: "msg", Author: signature("Ada", 3)},
		Now:    testNow,
	})
	if !page.HasMetadata() {
		t.Fatal("metadata block should be present with a descriptor")
	}
	m := page.Metadata
	if m.Message != "msg" || m.AuthorName != "Ada" || m.AuthoredAgo != "3 days ago" {
		t.Errorf("metadata = %+v", m)
	}
	if m.CommitOID != "oidZ" {
		t.Errorf("CommitOID = %q, want oidZ", m.CommitOID)
	}
	if m.ParentOID != "" {
		t.Errorf("root commit should have no parent, got %q", m.ParentOID)
	}
}

func TestCompose_UnknownAuthor(t *testing.T) {
	page := Compose(Input{Commit: &models.CommitDescriptor{}, Now: testNow})
	if page.Metadata.AuthorName != UnknownAuthor {
		t.Errorf("AuthorName = %q, want %q", page.Metadata.AuthorName, UnknownAuthor)
	}
	if page.Metadata.AuthoredAgo != "" {
		t.Errorf("missing date should render no relative time, got %q", page.Metadata.AuthoredAgo)
	}
}

func TestCompose_CommitterLine(t *testing.T) {
	author := signature("Ada", 3)

	tests := []struct {
		name      string
		committer *models.Signature
		want      *Committer
	}{
		{
			name:      "no committer",
			committer: nil,
			want:      nil,
		},
		{
			name:      "same name and date",
			committer: &models.Signature{Name: "Ada", Date: author.Date},
			want:      nil,
		},
		{
			name:      "different name",
			committer: &models.Signature{Name: "Grace", Date: author.Date},
			want:      &Committer{Name: "Grace", CommittedAgo: "3 days ago"},
		},
		{
			name:      "different date",
			committer: func() *models.Signature { s := signature("Ada", 1); return &s }(),
			want:      &Committer{Name: "Ada", CommittedAgo: "1 days ago"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Compose(Input{
				Commit: &models.CommitDescriptor{Author: author, Committer: tt.committer},
				Now:    testNow,
			})
			got := page.Metadata.Committer
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Committer = %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Committer = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestCompose_FirstParentOnly(t *testing.T) {
	page := Compose(Input{
		Commit: &models.CommitDescriptor{
			Author:  signature("Ada", 0),
			Parents: []models.ParentRef{{OID: "a"}, {OID: "b"}},
		},
		Now: testNow,
	})
	if page.Metadata.ParentOID != "a" {
		t.Errorf("ParentOID = %q, want a", page.Metadata.ParentOID)
	}
}

func TestCompose_FileListStates(t *testing.T) {
	oneFile := diff.Build([]models.FileDiff{{HeadFile: models.HeadFile{Path: "a.go"}}})

	tests := []struct {
		name            string
		presentation    *diff.Presentation
		loading         bool
		wantState       FileListState
		wantPlaceholder string
	}{
		{name: "empty diff", presentation: diff.Build([]models.FileDiff{}), wantState: FilesEmpty, wantPlaceholder: EmptyPlaceholder},
		{name: "nil diff", presentation: nil, wantState: FilesEmpty, wantPlaceholder: EmptyPlaceholder},
		{name: "loading with no data", presentation: nil, loading: true, wantState: FilesLoading, wantPlaceholder: LoadingPlaceholder},
		{name: "loading with data", presentation: oneFile, loading: true, wantState: FilesLoading, wantPlaceholder: LoadingPlaceholder},
		{name: "ready", presentation: oneFile, wantState: FilesReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Compose(Input{Presentation: tt.presentation, Loading: tt.loading, Now: testNow})
			if page.Files.State != tt.wantState {
				t.Errorf("State = %v, want %v", page.Files.State, tt.wantState)
			}
			if page.Files.Placeholder != tt.wantPlaceholder {
				t.Errorf("Placeholder = %q, want %q", page.Files.Placeholder, tt.wantPlaceholder)
			}
			if tt.wantState != FilesReady && len(page.Files.Sections) != 0 {
				t.Errorf("placeholder states should have no sections")
			}
		})
	}
}

func TestCompose_SectionsFollowDisclosure(t *testing.T) {
	p := diff.Build([]models.FileDiff{
		{HeadFile: models.HeadFile{Path: "a.go"}, Hunks: []models.Hunk{{Header: "@@", Lines: []models.DiffLine{{Content: "+x"}}}}},
		{HeadFile: models.HeadFile{Path: "b.go"}, Hunks: []models.Hunk{{Header: "@@", Lines: []models.DiffLine{{Content: "-y"}}}}},
	})
	state := disclosure.New(disclosure.KeyByPosition)
	state.Reset(p.Paths())
	state.Toggle(1)

	page := Compose(Input{Presentation: p, Disclosure: state, Now: testNow})

	sections := page.Files.Sections
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Expanded || len(sections[0].Blocks) != 1 {
		t.Errorf("section 0 should be collapsed and still carry its block")
	}
	if !sections[1].Expanded || len(sections[1].Blocks) != 1 {
		t.Errorf("section 1 should be expanded with its block")
	}
	if page.Files.Stats != (diff.Stats{Added: 1, Removed: 1}) {
		t.Errorf("Stats = %+v", page.Files.Stats)
	}
}

func TestPalette_SingleLookupPerKind(t *testing.T) {
	rows := []diff.Row{
		{Kind: diff.Classify("+a"), Content: "+a"},
		{Kind: diff.Classify("-a"), Content: "-a"},
		{Kind: diff.Classify(" a"), Content: " a"},
	}
	want := []Swatch{
		{Row: "#D8FFCB", BaseColumn: "#D8FFCB", HeadColumn: "#D8FFCB"},
		{Row: "#FFE4E9", BaseColumn: "#FFE4E9", HeadColumn: "#FFE4E9"},
		{Row: "#FFFFFF", BaseColumn: "#FFFFFF", HeadColumn: "#F8FBFF"},
	}
	for i, r := range rows {
		if got := DefaultPalette.Swatch(r); got != want[i] {
			t.Errorf("Swatch(%q) = %+v, want %+v", r.Content, got, want[i])
		}
	}
	if got := (Palette{}).For(diff.Addition); got != (Swatch{}) {
		t.Errorf("empty palette should yield zero swatch, got %+v", got)
	}
}
