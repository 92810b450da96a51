package view

import "github.com/gh-nvat/commitview/src/pkg/diff"

// Swatch holds the three backgrounds of a diff row
type Swatch struct {
	Row        string
	BaseColumn string
	HeadColumn string
}

// Palette maps a row kind to its swatch
type Palette map[diff.Kind]Swatch

// DefaultPalette is the light commit page palette
var DefaultPalette = Palette{
	diff.Addition: {Row: "#D8FFCB", BaseColumn: "#D8FFCB", HeadColumn: "#D8FFCB"},
	diff.Removal:  {Row: "#FFE4E9", BaseColumn: "#FFE4E9", HeadColumn: "#FFE4E9"},
	diff.Context:  {Row: "#FFFFFF", BaseColumn: "#FFFFFF", HeadColumn: "#F8FBFF"},
}

// For returns the swatch of a kind, falling back to context
func (p Palette) For(k diff.Kind) Swatch {
	if s, ok := p[k]; ok {
		return s
	}
	return p[diff.Context]
}

// Swatch returns the row's swatch from its memoized kind
func (p Palette) Swatch(r diff.Row) Swatch {
	return p.For(r.Kind)
}
