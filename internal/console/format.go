package console

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/vegan-simulator/internal/config"
	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

func trendArrow(dir sim.TrendDirection) string {
	switch dir {
	case sim.TrendUp:
		return "↑"
	case sim.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

func formatValue(ind sim.Indicator, v float64) string {
	switch ind {
	case sim.Population:
		return fmt.Sprintf("%.2f", v)
	case sim.AnimalLives:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// palette decorates judged fragments of the output. The plain palette
// leaves text untouched.
type palette interface {
	assessed(a sim.Assessment, text string) string
	undefined(text string) string
}

type plainPalette struct{}

func (plainPalette) assessed(_ sim.Assessment, text string) string { return text }
func (plainPalette) undefined(text string) string { return text }

// FormatStatus renders the current year, diet and every indicator with its
// trend and change since 2024. Indicators without a defined trend show "?".
func FormatStatus(s *sim.State) string {
	return formatStatus(s, plainPalette{})
}

func formatStatus(s *sim.State, p palette) string {
	trends, _ := s.Trends()
	var b strings.Builder
	fmt.Fprintf(&b, "Year %d of %d\n", s.Year, s.MaxYear())
	b.WriteString(FormatDiet(s.Diet))
	for _, ind := range sim.Indicators() {
		info := sim.IndicatorInfo(ind)
		value := s.Indicators.Value(ind)

		arrow := p.undefined("?")
		if dir, ok := trends[ind]; ok {
			arrow = p.assessed(sim.Assess(ind, dir), trendArrow(dir))
		}
		delta := p.undefined("n/a")
		if change, err := sim.ChangeFromBaseline(value, ind.Baseline()); err == nil {
			text := fmt.Sprintf("%+.1f%%", change)
			delta = p.assessed(sim.Assess(ind, deltaDirection(text)), text)
		}
		fmt.Fprintf(&b, "\n  %-14s %9s %-6s %s  %s vs %d", info.Label, formatValue(ind, value), info.Unit, arrow, delta, sim.StartYear)
	}
	return b.String()
}

// deltaDirection reads the sign of a rendered change, so a change that
// rounds to zero counts as stable.
func deltaDirection(rendered string) sim.TrendDirection {
	switch {
	case strings.Trim(rendered, "+-0.%") == "":
		return sim.TrendStable
	case strings.HasPrefix(rendered, "-"):
		return sim.TrendDown
	default:
		return sim.TrendUp
	}
}

func FormatDiet(d sim.DietDistribution) string {
	parts := make([]string, 0, len(sim.Categories()))
	for _, c := range sim.Categories() {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", sim.DietInfo(c).Label, d.Get(c)))
	}
	return "Diet: " + strings.Join(parts, ", ")
}

func FormatHistory(entries []sim.HistoryEntry) string {
	if len(entries) == 0 {
		return "No history yet."
	}
	var b strings.Builder
	b.WriteString("Year ")
	for _, ind := range sim.Indicators() {
		fmt.Fprintf(&b, " %12s", ind.String())
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%d ", e.Year)
		for _, ind := range sim.Indicators() {
			fmt.Fprintf(&b, " %12s", formatValue(ind, e.Indicators.Value(ind)))
		}
	}
	return b.String()
}

func formatTrendLine(ind sim.Indicator, dir sim.TrendDirection, p palette) string {
	a := sim.Assess(ind, dir)
	judged := p.assessed(a, fmt.Sprintf("%s %s (%s)", trendArrow(dir), dir, a))
	return fmt.Sprintf("%s: %s", sim.IndicatorInfo(ind).Label, judged)
}

func formatUndefinedTrend(ind sim.Indicator, err error, p palette) string {
	return fmt.Sprintf("%s: %s", sim.IndicatorInfo(ind).Label, p.undefined(fmt.Sprintf("trend undefined (%v)", err)))
}

// FormatTrends renders one line per indicator in display order, including
// the ones whose trend is undefined.
func FormatTrends(trends map[sim.Indicator]sim.TrendDirection, undefined map[sim.Indicator]error) string {
	return formatTrends(trends, undefined, plainPalette{})
}

func formatTrends(trends map[sim.Indicator]sim.TrendDirection, undefined map[sim.Indicator]error, p palette) string {
	lines := make([]string, 0, len(sim.Indicators()))
	for _, ind := range sim.Indicators() {
		if err, ok := undefined[ind]; ok {
			lines = append(lines, formatUndefinedTrend(ind, err, p))
			continue
		}
		if dir, ok := trends[ind]; ok {
			lines = append(lines, formatTrendLine(ind, dir, p))
		}
	}
	return strings.Join(lines, "\n")
}

func FormatPresets(presets []config.Preset) string {
	if len(presets) == 0 {
		return "No presets configured."
	}
	var b strings.Builder
	b.WriteString("Presets:")
	for _, p := range presets {
		fmt.Fprintf(&b, "\n  %-18s %s", p.Name, p.Description)
	}
	return b.String()
}
