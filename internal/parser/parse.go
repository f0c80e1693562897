package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Commands() []CommandDef {
	return p.registry.Commands()
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Type help for a list."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		if inferred := inferShorthand(intent, tokens); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, status, set, step, run, trend, preset, reset.",
		}
		return intent
	}

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	argsTokens, q := splitQuantity(argsTokens)
	intent.Quantity = q

	// The number typed with an ambiguous verb rides along on each option.
	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				p.optionFor(raw, cmdMatch, q),
				p.optionFor(raw, alternates[0], q),
			},
		}
		return intent
	}

	def, _ := p.registry.command(cmdMatch.Canonical)
	intent.Verb = def.Canonical
	intent.Kind = def.Kind
	intent.Confidence = clampScore(cmdMatch.Score)

	resolvedArgs, clarify, argScore := p.resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if len(intent.Args) < def.MinArgs {
		intent.Clarify = &ClarifyQuestion{Prompt: usageFor(def)}
		intent.Confidence = 0.42
		return intent
	}
	if def.NeedsQuantity && intent.Quantity == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: usageFor(def)}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs >= 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase."}
	}
	return intent
}

func (p *Parser) optionFor(raw string, c commandCandidate, q *Quantity) Intent {
	def, _ := p.registry.command(c.Canonical)
	return Intent{
		Raw:        raw,
		Normalised: c.Canonical,
		Kind:       def.Kind,
		Verb:       c.Canonical,
		Quantity:   q,
		Confidence: c.Score,
	}
}

// inferShorthand accepts "vegan 40" as "set vegan 40".
func inferShorthand(intent Intent, tokens []string) *Intent {
	rest, q := splitQuantity(tokens)
	if q == nil || len(rest) != 1 {
		return nil
	}
	diet, score, tie := resolveDiet(rest[0])
	if tie || len(diet) != 1 || score < 0.6 {
		return nil
	}
	intent.Kind = Command
	intent.Verb = "set"
	intent.Args = diet
	intent.Quantity = q
	intent.Confidence = clampScore(score * 0.9)
	return &intent
}

func usageFor(def CommandDef) string {
	switch def.Canonical {
	case "set":
		return "Usage: set <diet> <percent>, e.g. set vegan 25"
	case "run":
		return "Usage: run <years>, e.g. run 10"
	case "preset":
		return "Usage: preset <name>. Type presets for the list."
	case "save":
		return "Usage: save <name>"
	case "load":
		return "Usage: load <name>. Type snapshots for the list."
	default:
		return fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)
	}
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i := 0; i < len(args); i++ {
		kind := def.argKind(i)
		token := args[i]
		// names may span several tokens once normalised
		if i == len(def.Args)-1 && (kind == ArgFree || kind == ArgPreset || kind == ArgSnapshot) {
			sep := " "
			if kind == ArgFree {
				sep = "-"
			}
			token = strings.Join(args[i:], sep)
			i = len(args)
		}

		var (
			matches    []string
			confidence float64
			tie        bool
		)
		switch kind {
		case ArgDiet:
			matches, confidence, tie = resolveDiet(token)
		case ArgIndicator:
			matches, confidence, tie = resolveIndicator(token)
		case ArgPreset:
			matches, confidence, tie = resolveName(token, ctx.Presets)
		case ArgSnapshot:
			matches, confidence, tie = resolveName(token, ctx.Snapshots)
		default:
			resolved = append(resolved, token)
			score -= 0.02
			continue
		}
		if tie && len(matches) >= 2 {
			options := make([]Intent, 0, 2)
			for idx := 0; idx < 2; idx++ {
				options = append(options, Intent{
					Kind:       def.Kind,
					Verb:       def.Canonical,
					Args:       []string{matches[idx]},
					Confidence: confidence - float64(idx)*0.01,
				})
			}
			return nil, &ClarifyQuestion{
				Prompt:  fmt.Sprintf("Did you mean %s %s or %s %s?", def.Canonical, matches[0], def.Canonical, matches[1]),
				Options: options,
			}, 0.52
		}
		if len(matches) == 0 {
			return nil, &ClarifyQuestion{Prompt: unknownArgPrompt(kind, token)}, 0.4
		}
		resolved = append(resolved, matches[0])
		score = minScore(score, confidence)
	}
	return resolved, nil, clampScore(score)
}

func unknownArgPrompt(kind ArgKind, token string) string {
	switch kind {
	case ArgDiet:
		return fmt.Sprintf("Unknown diet %q. Choose vegan, vegetarian, pescatarian, mixed or carnivore.", token)
	case ArgIndicator:
		names := make([]string, 0, len(sim.Indicators()))
		for _, ind := range sim.Indicators() {
			names = append(names, ind.String())
		}
		return fmt.Sprintf("Unknown indicator %q. Choose one of %s.", token, strings.Join(names, ", "))
	case ArgPreset:
		return fmt.Sprintf("Unknown preset %q. Type presets for the list.", token)
	case ArgSnapshot:
		return fmt.Sprintf("No snapshot named %q. Type snapshots for the list.", token)
	default:
		return fmt.Sprintf("Unexpected argument %q.", token)
	}
}

var dietAliases = map[string]sim.DietCategory{
	"plant":       sim.Vegan,
	"plants":      sim.Vegan,
	"veggie":      sim.Vegetarian,
	"veg":         sim.Vegetarian,
	"fish":        sim.Pescatarian,
	"pesco":       sim.Pescatarian,
	"omnivore":    sim.Mixed,
	"omni":        sim.Mixed,
	"meat":        sim.Carnivore,
	"meateater":   sim.Carnivore,
	"carnivorous": sim.Carnivore,
}

var indicatorAliases = map[string]sim.Indicator{
	"carbon":    sim.CO2,
	"emissions": sim.CO2,
	"land":      sim.LandUse,
	"water":     sim.WaterUse,
	"health":    sim.HealthIndex,
	"pop":       sim.Population,
	"people":    sim.Population,
	"biodiv":    sim.Biodiversity,
	"species":   sim.Biodiversity,
	"food":      sim.FoodSecurity,
	"hunger":    sim.FoodSecurity,
	"animals":   sim.AnimalLives,
}

// resolveDiet maps a token to a canonical diet key, accepting aliases,
// prefixes and small typos.
func resolveDiet(token string) ([]string, float64, bool) {
	if c, ok := dietAliases[token]; ok {
		return []string{c.String()}, 0.95, false
	}
	keys := make([]string, 0, len(sim.Categories()))
	for _, c := range sim.Categories() {
		keys = append(keys, c.String())
	}
	return bestMatches(token, keys)
}

func resolveIndicator(token string) ([]string, float64, bool) {
	if ind, ok := indicatorAliases[token]; ok {
		return []string{ind.String()}, 0.95, false
	}
	keys := make([]string, 0, len(sim.Indicators()))
	display := map[string]string{}
	for _, ind := range sim.Indicators() {
		k := strings.ToLower(ind.String())
		keys = append(keys, k)
		display[k] = ind.String()
	}
	matches, score, tie := bestMatches(token, keys)
	for i, m := range matches {
		matches[i] = display[m]
	}
	return matches, score, tie
}

// resolveName matches token against user-visible names such as presets,
// returning the names in their original spelling.
func resolveName(token string, names []string) ([]string, float64, bool) {
	keys := make([]string, 0, len(names))
	display := map[string]string{}
	for _, name := range names {
		k := normaliseInput(name)
		if k == "" {
			continue
		}
		if _, dup := display[k]; dup {
			continue
		}
		display[k] = name
		keys = append(keys, k)
	}
	matches, score, tie := bestMatches(normaliseInput(token), keys)
	for i, m := range matches {
		matches[i] = display[m]
	}
	return matches, score, tie
}

// bestMatches scores every candidate against token. It reports a tie when
// the two best candidates are indistinguishable.
func bestMatches(token string, all []string) ([]string, float64, bool) {
	if len(all) == 0 || token == "" {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = scoreExact
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = scorePrefix
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = fuzzyBase - fuzzyStep*float64(dist)
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})
	if len(results) > 1 && results[0].score < 1 && results[0].score-results[1].score < 0.01 {
		return []string{results[0].val, results[1].val}, results[0].score, true
	}
	return []string{results[0].val}, results[0].score, false
}
