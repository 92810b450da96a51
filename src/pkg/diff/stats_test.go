package diff

import (
	"testing"
)

// TestCalcLineChangesFromPatch tests the line counting utility function
func TestCalcLineChangesFromPatch(t *testing.T) {
	tests := []struct {
		name            string
		patch           string
		expectedAdded   int
		expectedRemoved int
		expectedTotal   int
	}{
		{
			name:            "empty patch",
			patch:           "",
			expectedAdded:   0,
			expectedRemoved: 0,
			expectedTotal:   0,
		},
		{
			name: "simple additions and removals",
			patch: `--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,4 @@
 line1
-line2
-line3
+line2_modified
+line3
+line4
`,
			expectedAdded:   3,
			expectedRemoved: 2,
			expectedTotal:   5,
		},
		{
			name: "only additions",
			patch: `@@ -0,0 +1,2 @@
+new line 1
+new line 2
`,
			expectedAdded:   2,
			expectedRemoved: 0,
			expectedTotal:   2,
		},
		{
			name: "only removals",
			patch: `@@ -1,2 +0,0 @@
-old line 1
-old line 2
`,
			expectedAdded:   0,
			expectedRemoved: 2,
			expectedTotal:   2,
		},
		{
			name: "added line that looks like a file header",
			patch: `@@ -1,1 +1,2 @@
 line1
+++ not a header
`,
			expectedAdded:   1,
			expectedRemoved: 0,
			expectedTotal:   1,
		},
		{
			name: "no newline markers",
			patch: `@@ -1,3 +1,4 @@
 line1
-line2
+line2_modified
+line3
\ No newline at end of file
`,
			expectedAdded:   2,
			expectedRemoved: 1,
			expectedTotal:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed, total := CalcLineChangesFromPatch(tt.patch)

			if added != tt.expectedAdded {
				t.Errorf("CalcLineChangesFromPatch() added = %v, want %v", added, tt.expectedAdded)
			}
			if removed != tt.expectedRemoved {
				t.Errorf("CalcLineChangesFromPatch() removed = %v, want %v", removed, tt.expectedRemoved)
			}
			if total != tt.expectedTotal {
				t.Errorf("CalcLineChangesFromPatch() total = %v, want %v", total, tt.expectedTotal)
			}
			if total != added+removed {
				t.Errorf("Total (%d) should equal added (%d) + removed (%d)", total, added, removed)
			}
		})
	}
}

func TestStats_Add(t *testing.T) {
	s := Stats{Added: 1, Removed: 2}
	s.Add(Stats{Added: 3, Removed: 4})
	if s != (Stats{Added: 4, Removed: 6}) {
		t.Errorf("Add() = %+v", s)
	}
}

// BenchmarkBuild benchmarks building a presentation from a parsed patch
func BenchmarkBuild(b *testing.B) {
	patch := "@@ -1,100 +1,100 @@\n"
	for i := 0; i < 100; i++ {
		patch += " context\n-removed\n+added\n"
	}
	hunks := ParsePatch(patch)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(filesWith(hunks))
	}
}
