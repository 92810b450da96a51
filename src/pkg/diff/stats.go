package diff

import "strings"

// Stats counts added and removed lines
type Stats struct {
	Added   int
	Removed int
}

// Total returns Added + Removed
func (s Stats) Total() int {
	return s.Added + s.Removed
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Added += other.Added
	s.Removed += other.Removed
}

func (s *Stats) count(k Kind) {
	switch k {
	case Addition:
		s.Added++
	case Removal:
		s.Removed++
	}
}

// CalcLineChangesFromPatch calculates the number of added and removed lines from a raw unified patch
// returns: addedLines, removedLines, totalLines
// lines before the first hunk header (`---`/`+++` file headers) are not counted
func CalcLineChangesFromPatch(patch string) (int, int, int) {
	var stats Stats
	inHunk := false
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, hunkHeaderPrefix) {
			inHunk = true
			continue
		}
		if inHunk {
			stats.count(Classify(line))
		}
	}
	return stats.Added, stats.Removed, stats.Total()
}
