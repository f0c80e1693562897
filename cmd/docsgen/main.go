package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/appengine-ltd/vegan-simulator/internal/config"
	"github.com/appengine-ltd/vegan-simulator/internal/parser"
	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generateFactorsDoc(),
		generateBaselinesDoc(),
		generateIndicatorsDoc(),
		generatePresetsDoc(),
		generateCommandsDoc(),
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Model Reference\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateFactorsDoc() docFile {
	var b strings.Builder
	b.WriteString("# Diet Factors\n\n")
	b.WriteString("Source: `internal/sim/factors.go` (`FactorsFor`).\n\n")
	b.WriteString("Per-person values. Each indicator uses the diet-weighted average of its column.\n\n")
	b.WriteString("| Diet | CO2 (t/yr) | Land (ha/yr) | Water (m³/day) | Health | Biodiversity | Efficiency | Animals killed /yr |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, c := range sim.Categories() {
		f := sim.FactorsFor(c)
		cells := []string{
			escape(sim.DietInfo(c).Label),
			formatFloat(f.CO2),
			formatFloat(f.Land),
			formatFloat(f.Water),
			formatFloat(f.Health),
			formatFloat(f.Biodiversity),
			formatFloat(f.Efficiency),
			formatFloat(f.AnimalsKilled),
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	b.WriteString("\n## Starting distribution\n\n")
	initial := sim.InitialDiet()
	for _, c := range sim.Categories() {
		b.WriteString(fmt.Sprintf("- %s: %s%%\n", sim.DietInfo(c).Label, formatFloat(initial.Get(c))))
	}
	return docFile{Name: "diet-factors.md", Title: "Diet Factors", Content: b.String()}
}

func generateBaselinesDoc() docFile {
	bv := sim.Baselines
	rows := [][2]string{
		{"Population (bn)", formatFloat(bv.Population)},
		{"CO2, all sources (Gt/yr)", formatFloat(bv.CO2)},
		{"Food system CO2 share", formatFloat(bv.FoodCO2Share)},
		{"Agricultural land (M km²)", formatFloat(bv.AgriculturalLand)},
		{"Freshwater used by agriculture (%)", formatFloat(bv.Freshwater)},
		{"Biodiversity vs 1970 (%)", formatFloat(bv.Biodiversity)},
		{"Food security (%)", formatFloat(bv.FoodSecurity)},
		{"Health index", formatFloat(bv.Health)},
		{"Animal lives (bn/yr)", formatFloat(bv.AnimalLives)},
	}

	var b strings.Builder
	b.WriteString("# Baselines\n\n")
	b.WriteString("Source: `internal/sim/factors.go` (`Baselines`).\n\n")
	b.WriteString(fmt.Sprintf("Reference year: **%d**. Simulations end at %d by default.\n\n", sim.StartYear, sim.MaxYear))
	b.WriteString("| Measure | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("| %s | %s |\n", escape(r[0]), r[1]))
	}
	b.WriteString(fmt.Sprintf("\nBase population growth: %s per year, scaled by food security.\n", formatFloat(sim.PopulationBaseGrowth)))
	return docFile{Name: "baselines.md", Title: "Baselines", Content: b.String()}
}

func generateIndicatorsDoc() docFile {
	var b strings.Builder
	b.WriteString("# Indicators\n\n")
	b.WriteString("Source: `internal/sim/indicators.go` (`IndicatorInfo`, `IndicatorRange`).\n\n")
	b.WriteString("| Key | Label | Unit | Baseline | Range | Good direction | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, ind := range sim.Indicators() {
		info := sim.IndicatorInfo(ind)
		r := sim.IndicatorRange(ind)
		rng := fmt.Sprintf("≥ %s", formatFloat(r.Min))
		if r.Clamped {
			rng = fmt.Sprintf("%s-%s", formatFloat(r.Min), formatFloat(r.Max))
		}
		cells := []string{
			escape(ind.String()),
			escape(info.Label),
			escape(info.Unit),
			formatFloat(ind.Baseline()),
			rng,
			escape(string(info.Good)),
			escape(info.Description),
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return docFile{Name: "indicators.md", Title: "Indicators", Content: b.String()}
}

func generatePresetsDoc() docFile {
	var b strings.Builder
	b.WriteString("# Built-in Presets\n\n")
	b.WriteString("Source: `internal/config/presets.go` (`BuiltInPresets`). A config file with its own `presets` replaces these.\n\n")
	b.WriteString("| Name | Description | Diet |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, p := range config.BuiltInPresets() {
		d, err := p.Distribution()
		if err != nil {
			fatal(err)
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", escape(p.Name), escape(p.Description), escape(formatDiet(d))))
	}
	return docFile{Name: "presets.md", Title: "Presets", Content: b.String()}
}

func generateCommandsDoc() docFile {
	var b strings.Builder
	b.WriteString("# Console Commands\n\n")
	b.WriteString("Source: `internal/parser/registry.go` (`DefaultRegistry`).\n\n")
	b.WriteString("| Command | Aliases | Needs number | Arguments |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, c := range parser.New().Commands() {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escape(c.Canonical),
			escape(strings.Join(c.Aliases, ", ")),
			yesNo(c.NeedsQuantity),
			strconv.Itoa(c.MinArgs)+"-"+strconv.Itoa(c.MaxArgs),
		))
	}
	return docFile{Name: "commands.md", Title: "Console Commands", Content: b.String()}
}

func formatDiet(d sim.DietDistribution) string {
	parts := make([]string, 0, len(sim.Categories()))
	for _, c := range sim.Categories() {
		if v := d.Get(c); v > 0 {
			parts = append(parts, fmt.Sprintf("%s %s%%", c, formatFloat(v)))
		}
	}
	return strings.Join(parts, ", ")
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
