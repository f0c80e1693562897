package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// ArgKind tells the parser how to resolve a positional argument.
type ArgKind int

const (
	ArgFree ArgKind = iota
	ArgDiet
	ArgIndicator
	ArgPreset
	ArgSnapshot
)

type Quantity struct {
	Raw   string
	Value float64
	Unit  string
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries the names that are valid in the current session.
type ParseContext struct {
	Presets   []string
	Snapshots []string
}

type CommandDef struct {
	Canonical     string
	Aliases       []string
	MinArgs       int
	MaxArgs       int
	Args          []ArgKind
	NeedsQuantity bool
	Kind          IntentKind
}

func (c CommandDef) argKind(pos int) ArgKind {
	if pos < len(c.Args) {
		return c.Args[pos]
	}
	return ArgFree
}
