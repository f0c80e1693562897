package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	multiSpaceRE = regexp.MustCompile(`\s+`)
	numberRE     = regexp.MustCompile(`^(\d+(?:\.\d+)?)(%|y|yr|yrs|years?)?$`)
)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '%' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '=' || r == ',' || r == ':' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	m := numberRE.FindStringSubmatch(token)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	unit := "count"
	switch {
	case m[2] == "%":
		unit = "percent"
	case m[2] != "":
		unit = "years"
	}
	return &Quantity{Raw: token, Value: v, Unit: unit}
}

// splitQuantity pulls the first numeric token out of tokens. A trailing
// "percent" or "years" word is folded into the unit.
func splitQuantity(tokens []string) ([]string, *Quantity) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var q *Quantity
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				if i+1 < len(tokens) {
					switch tokens[i+1] {
					case "percent", "pct":
						q.Unit = "percent"
						i++
					case "year", "years", "yrs":
						q.Unit = "years"
						i++
					}
				}
				continue
			}
		}
		if isFiller(token) {
			continue
		}
		out = append(out, token)
	}
	return out, q
}

func isFiller(token string) bool {
	switch token {
	case "to", "the", "by", "for", "of", "at", "a":
		return true
	default:
		return false
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func minScore(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
