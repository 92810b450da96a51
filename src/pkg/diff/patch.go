package diff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gh-nvat/commitview/src/pkg/models"
)

const hunkHeaderPrefix = "@@"

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// ParsePatch parses the body of a unified diff for a single file into hunks.
// Base and head line numbers are assigned from each hunk header; `\ No newline`
// markers are kept as context lines without numbers. Lines before the first
// hunk header are ignored.
func ParsePatch(patch string) []models.Hunk {
	var hunks []models.Hunk
	var current *models.Hunk
	var base, head int

	lines := strings.Split(strings.TrimSuffix(patch, "\n"), "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, hunkHeaderPrefix) {
			if current != nil {
				hunks = append(hunks, *current)
			}
			current = &models.Hunk{Header: line, Lines: []models.DiffLine{}}
			base, head = parseHunkStart(line)
			continue
		}
		if current == nil {
			continue
		}

		dl := models.DiffLine{Content: line}
		kind := Classify(line)
		switch {
		case strings.HasPrefix(line, `\`):
		case kind == Addition:
			dl.HeadLineNumber = models.LineNumber(head)
			head++
		case kind == Removal:
			dl.BaseLineNumber = models.LineNumber(base)
			base++
		default:
			dl.BaseLineNumber = models.LineNumber(base)
			dl.HeadLineNumber = models.LineNumber(head)
			base++
			head++
		}
		current.Lines = append(current.Lines, dl)
	}

	if current != nil {
		hunks = append(hunks, *current)
	}
	return hunks
}

// parseHunkStart returns the starting base and head line numbers of a hunk header.
// A malformed header starts both sides at 1.
func parseHunkStart(header string) (int, int) {
	m := hunkHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return 1, 1
	}
	base, _ := strconv.Atoi(m[1])
	head, _ := strconv.Atoi(m[2])
	return base, head
}
