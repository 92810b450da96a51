package models

// FileDiff is one file's entry in the commit diff. The order of a []FileDiff
// as received is the display order.
type FileDiff struct {
	HeadFile HeadFile `json:"headFile"`
	Hunks    []Hunk   `json:"hunks"`
}

// HeadFile is the file as it exists in the commit's resulting tree
type HeadFile struct {
	Path string `json:"path"`
}

// Hunk is a contiguous block of lines sharing one positional header
type Hunk struct {
	Header string     `json:"header"`
	Lines  []DiffLine `json:"lines"`
}

// DiffLine is a single diff line; Content keeps its leading marker character
type DiffLine struct {
	Content        string `json:"content"`
	BaseLineNumber *int   `json:"baseLineNumber,omitempty"`
	HeadLineNumber *int   `json:"headLineNumber,omitempty"`
}

// LineNumber returns a pointer to n, for building DiffLines
func LineNumber(n int) *int {
	return &n
}
