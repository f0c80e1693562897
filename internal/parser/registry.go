package parser

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	scoreExact  = 1.0
	scoreAlias  = 0.97
	scorePrefix = 0.9

	// fuzzy scores start here and lose fuzzyStep per edit
	fuzzyBase  = 0.72
	fuzzyStep  = 0.08
	aliasBonus = 0.03

	maxAlternates = 4
)

type matchSource int

const (
	matchExact matchSource = iota
	matchAlias
	matchPrefix
	matchFuzzy
)

// phrase is one spelling of a command, either its canonical verb or an alias.
type phrase struct {
	canonical string
	text      string
	tokens    []string
}

func (p phrase) isAlias() bool {
	return p.text != p.canonical
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []phrase
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandDef)}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	r.commands[c.Canonical] = c

	spellings := append([]string{c.Canonical}, c.Aliases...)
	for _, s := range spellings {
		text := normaliseInput(s)
		if text == "" {
			continue
		}
		r.phrases = append(r.phrases, phrase{canonical: c.Canonical, text: text, tokens: tokenise(text)})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

// Commands lists the registered canonical verbs alphabetically.
func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b CommandDef) int { return cmp.Compare(a.Canonical, b.Canonical) })
	return out
}

type commandCandidate struct {
	Canonical string
	Consumed  int
	Score     float64
	Source    matchSource
}

// matchCommand scores every phrase against the start of tokens. It returns
// the best candidate and up to four runners-up for other commands.
func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, p := range r.phrases {
		if c, ok := scorePhrase(p, tokens); ok {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	slices.SortStableFunc(cands, func(a, b commandCandidate) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		if a.Consumed != b.Consumed {
			return cmp.Compare(b.Consumed, a.Consumed)
		}
		return cmp.Compare(a.Canonical, b.Canonical)
	})
	return cands[0], alternates(cands)
}

func scorePhrase(p phrase, tokens []string) (commandCandidate, bool) {
	if len(p.tokens) == 0 {
		return commandCandidate{}, false
	}
	consumed := min(len(tokens), len(p.tokens))
	head := strings.Join(tokens[:consumed], " ")
	c := commandCandidate{Canonical: p.canonical, Consumed: consumed}

	switch {
	case consumed == len(p.tokens) && head == p.text:
		c.Score, c.Source = scoreExact, matchExact
		if p.isAlias() {
			c.Score, c.Source = scoreAlias, matchAlias
		}
	case len(p.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(p.text, tokens[0]):
		c.Consumed = 1
		c.Score, c.Source = scorePrefix, matchPrefix
	case len(head) >= 3:
		dist := levenshtein.ComputeDistance(head, p.text)
		if dist > levenshteinLimit(len(p.text)) {
			return commandCandidate{}, false
		}
		c.Score, c.Source = fuzzyBase-fuzzyStep*float64(dist), matchFuzzy
		if p.isAlias() {
			c.Score += aliasBonus
		}
	default:
		return commandCandidate{}, false
	}
	return c, true
}

// alternates keeps the best candidate of each other command, in rank order.
func alternates(ranked []commandCandidate) []commandCandidate {
	out := make([]commandCandidate, 0, maxAlternates)
	seen := map[string]bool{ranked[0].Canonical: true}
	for _, c := range ranked[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		out = append(out, c)
		if len(out) == maxAlternates {
			break
		}
	}
	return out
}

// levenshteinLimit is the largest edit distance accepted for a word of the
// given length.
func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands"}, Kind: Help},
		{Canonical: "status", Aliases: []string{"indicators", "show", "where are we"}, Kind: Query},
		{Canonical: "diet", Aliases: []string{"mix", "diets", "distribution"}, Kind: Query},
		{Canonical: "set", Aliases: []string{"adjust", "change"}, MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgDiet}, NeedsQuantity: true, Kind: Command},
		{Canonical: "preset", Aliases: []string{"apply"}, MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgPreset}, Kind: Command},
		{Canonical: "presets", Aliases: []string{"list presets"}, Kind: Query},
		{Canonical: "step", Aliases: []string{"next", "tick", "advance"}, Kind: Command},
		{Canonical: "run", Aliases: []string{"simulate", "fast forward", "ff"}, NeedsQuantity: true, Kind: Command},
		{Canonical: "reset", Aliases: []string{"restart", "start over"}, Kind: Command},
		{Canonical: "history", Aliases: []string{"log"}, Kind: Query},
		{Canonical: "trend", Aliases: []string{"trends"}, MaxArgs: 1, Args: []ArgKind{ArgIndicator}, Kind: Query},
		{Canonical: "save", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgFree}, Kind: Command},
		{Canonical: "load", Aliases: []string{"open", "restore"}, MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgSnapshot}, Kind: Command},
		{Canonical: "snapshots", Aliases: []string{"saves", "list saves"}, Kind: Query},
		{Canonical: "quit", Aliases: []string{"q", "exit", "bye"}, Kind: Command},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}
