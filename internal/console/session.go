package console

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/appengine-ltd/vegan-simulator/internal/config"
	"github.com/appengine-ltd/vegan-simulator/internal/parser"
	"github.com/appengine-ltd/vegan-simulator/internal/sim"
	"github.com/appengine-ltd/vegan-simulator/internal/snapshot"
)

const defaultHistoryRows = 10

// Result is the outcome of one console command.
type Result struct {
	Handled       bool
	Message       string
	YearsAdvanced int
	Quit          bool
}

// Session drives one simulation from typed commands.
type Session struct {
	cfg     *config.Config
	store   *snapshot.Store
	parser  *parser.Parser
	state   *sim.State
	logger  *log.Logger
	palette palette

	// set while a clarify question waits for a numbered reply
	pending *parser.Intent
}

func NewSession(cfg *config.Config, store *snapshot.Store) (*Session, error) {
	state, err := cfg.NewState()
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:     cfg,
		store:   store,
		parser:  parser.New(),
		state:   state,
		logger:  log.Default(),
		palette: plainPalette{},
	}, nil
}

func (s *Session) State() *sim.State {
	return s.state
}

func (s *Session) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *Session) parseContext() parser.ParseContext {
	ctx := parser.ParseContext{Presets: s.cfg.PresetNames()}
	if s.store != nil {
		names, err := s.store.List()
		if err != nil {
			s.logger.Printf("list snapshots: %v", err)
		}
		ctx.Snapshots = names
	}
	return ctx
}

// Execute parses and runs one line of input. A number answers the previous
// clarify question.
func (s *Session) Execute(raw string) Result {
	raw = strings.TrimSpace(raw)
	if s.pending != nil {
		pending := s.pending
		s.pending = nil
		if idx, err := strconv.Atoi(raw); err == nil {
			options := pending.Clarify.Options
			if idx < 1 || idx > len(options) {
				return Result{Handled: true, Message: fmt.Sprintf("Pick a number between 1 and %d.", len(options))}
			}
			choice := options[idx-1]
			if choice.Quantity == nil {
				choice.Quantity = pending.Quantity
			}
			return s.ExecuteIntent(choice)
		}
	}

	intent := s.parser.Parse(s.parseContext(), raw)
	if intent.Clarify != nil {
		return s.clarify(intent)
	}
	return s.ExecuteIntent(intent)
}

func (s *Session) clarify(intent parser.Intent) Result {
	q := intent.Clarify
	if len(q.Options) == 0 {
		return Result{Handled: true, Message: q.Prompt}
	}
	s.pending = &intent
	var b strings.Builder
	b.WriteString(q.Prompt)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, strings.TrimSpace(opt.Verb+" "+strings.Join(opt.Args, " ")))
	}
	b.WriteString("\nReply with a number.")
	return Result{Handled: true, Message: b.String()}
}

func (s *Session) ExecuteIntent(intent parser.Intent) Result {
	switch intent.Verb {
	case "help":
		return Result{Handled: true, Message: s.help()}
	case "status":
		return Result{Handled: true, Message: formatStatus(s.state, s.palette)}
	case "diet":
		return Result{Handled: true, Message: FormatDiet(s.state.Diet)}
	case "set":
		return s.executeSet(intent)
	case "preset":
		return s.executePreset(intent.Args)
	case "presets":
		return Result{Handled: true, Message: FormatPresets(s.cfg.Presets)}
	case "step":
		years := 1
		if intent.Quantity != nil {
			years = int(intent.Quantity.Value)
		}
		return s.Simulate(years)
	case "run":
		if intent.Quantity == nil {
			return Result{Handled: true, Message: "Usage: run <years>, e.g. run 10"}
		}
		return s.Simulate(int(intent.Quantity.Value))
	case "reset":
		state, err := s.cfg.NewState()
		if err != nil {
			return errorResult(err)
		}
		s.state = state
		return Result{Handled: true, Message: fmt.Sprintf("Reset to %d.", state.Year)}
	case "history":
		rows := defaultHistoryRows
		if intent.Quantity != nil && intent.Quantity.Value >= 1 {
			rows = int(intent.Quantity.Value)
		}
		return Result{Handled: true, Message: FormatHistory(s.state.History.Window(rows))}
	case "trend":
		return s.executeTrend(intent.Args)
	case "save":
		return s.executeSave(intent.Args)
	case "load":
		return s.executeLoad(intent.Args)
	case "snapshots":
		return s.executeSnapshots()
	case "quit":
		return Result{Handled: true, Quit: true, Message: "Goodbye."}
	default:
		return Result{Handled: false, Message: "Unknown command. Type help for a list."}
	}
}

// Simulate advances the session by up to years and reports where it ended.
func (s *Session) Simulate(years int) Result {
	if years < 1 {
		return Result{Handled: true, Message: "Years must be at least 1."}
	}
	done, err := s.state.Run(years)
	res := Result{Handled: true, YearsAdvanced: done}
	switch {
	case errors.Is(err, sim.ErrMaxYear):
		res.Message = fmt.Sprintf("Reached the final year %d after %d year(s).\n%s", s.state.MaxYear(), done, formatStatus(s.state, s.palette))
	case err != nil:
		res.Message = fmt.Sprintf("Stopped after %d year(s): %v", done, err)
	default:
		res.Message = fmt.Sprintf("Simulated %d year(s).\n%s", done, formatStatus(s.state, s.palette))
	}
	return res
}

func (s *Session) executeSet(intent parser.Intent) Result {
	if len(intent.Args) == 0 || intent.Quantity == nil {
		return Result{Handled: true, Message: "Usage: set <diet> <percent>, e.g. set vegan 25"}
	}
	category, err := sim.ParseDietCategory(intent.Args[0])
	if err != nil {
		return errorResult(err)
	}
	if err := s.state.SetDiet(category, intent.Quantity.Value); err != nil {
		return errorResult(err)
	}
	return Result{Handled: true, Message: "Diet updated.\n" + FormatDiet(s.state.Diet)}
}

func (s *Session) executePreset(args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: preset <name>. Type presets for the list."}
	}
	p, err := s.cfg.Preset(args[0])
	if err != nil {
		return errorResult(err)
	}
	d, err := p.Distribution()
	if err != nil {
		return errorResult(err)
	}
	if err := s.state.ApplyDiet(d); err != nil {
		return errorResult(err)
	}
	return Result{Handled: true, Message: fmt.Sprintf("Applied preset %s.\n%s", p.Name, FormatDiet(s.state.Diet))}
}

func (s *Session) executeTrend(args []string) Result {
	if len(args) == 0 {
		trends, undefined := s.state.Trends()
		return Result{Handled: true, Message: formatTrends(trends, undefined, s.palette)}
	}
	ind, err := sim.ParseIndicator(args[0])
	if err != nil {
		return errorResult(err)
	}
	dir, err := s.state.History.Trend(ind)
	if err != nil {
		return Result{Handled: true, Message: formatUndefinedTrend(ind, err, s.palette)}
	}
	return Result{Handled: true, Message: formatTrendLine(ind, dir, s.palette)}
}

func (s *Session) executeSave(args []string) Result {
	if s.store == nil {
		return Result{Handled: true, Message: "Snapshots are disabled."}
	}
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: save <name>"}
	}
	if err := s.store.Save(args[0], s.state); err != nil {
		if !errors.Is(err, snapshot.ErrInvalidName) {
			s.logger.Printf("save snapshot %s: %v", args[0], err)
		}
		return errorResult(err)
	}
	return Result{Handled: true, Message: fmt.Sprintf("Saved snapshot %s at year %d.", args[0], s.state.Year)}
}

func (s *Session) executeLoad(args []string) Result {
	if s.store == nil {
		return Result{Handled: true, Message: "Snapshots are disabled."}
	}
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: load <name>. Type snapshots for the list."}
	}
	if err := s.store.Load(args[0], s.state); err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) && !errors.Is(err, snapshot.ErrInvalidName) {
			s.logger.Printf("load snapshot %s: %v", args[0], err)
		}
		return errorResult(err)
	}
	return Result{Handled: true, Message: fmt.Sprintf("Loaded snapshot %s.\n%s", args[0], formatStatus(s.state, s.palette))}
}

func (s *Session) executeSnapshots() Result {
	if s.store == nil {
		return Result{Handled: true, Message: "Snapshots are disabled."}
	}
	names, err := s.store.List()
	if err != nil {
		return errorResult(err)
	}
	if len(names) == 0 {
		return Result{Handled: true, Message: "No snapshots saved yet."}
	}
	return Result{Handled: true, Message: "Snapshots: " + strings.Join(names, ", ")}
}

func (s *Session) help() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, c := range s.parser.Commands() {
		fmt.Fprintf(&b, "\n  %-10s", c.Canonical)
		if len(c.Aliases) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(c.Aliases, ", "))
		}
	}
	b.WriteString("\nShorthand: vegan 40 is the same as set vegan 40.")
	return b.String()
}

func errorResult(err error) Result {
	return Result{Handled: true, Message: "Error: " + err.Error()}
}
