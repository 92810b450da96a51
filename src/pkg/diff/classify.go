package diff

// Kind is the classification of a single diff line
type Kind int

const (
	Context Kind = iota
	Addition
	Removal
)

func (k Kind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Removal:
		return "removal"
	default:
		return "context"
	}
}

// Classify classifies a diff line from the first character of its content only.
// Empty content is context.
func Classify(content string) Kind {
	if content == "" {
		return Context
	}
	switch content[0] {
	case '+':
		return Addition
	case '-':
		return Removal
	default:
		return Context
	}
}
