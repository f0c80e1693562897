package sim

import "fmt"

type HistoryEntry struct {
	Year       int              `json:"year"`
	Indicators IndicatorVector  `json:"indicators"`
	Diet       DietDistribution `json:"diet"`
}

// History is an append-only log of simulated years.
type History struct {
	entries []HistoryEntry
}

func NewHistory(seed HistoryEntry) *History {
	return &History{entries: []HistoryEntry{seed}}
}

func (h *History) Append(entry HistoryEntry) error {
	if n := len(h.entries); n > 0 && entry.Year <= h.entries[n-1].Year {
		return fmt.Errorf("%w: year %d after %d", ErrHistoryOrder, entry.Year, h.entries[n-1].Year)
	}
	h.entries = append(h.entries, entry)
	return nil
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Entries returns a copy of every entry, oldest first.
func (h *History) Entries() []HistoryEntry {
	if h == nil {
		return nil
	}
	return append([]HistoryEntry(nil), h.entries...)
}

// Window returns a copy of the last n entries.
func (h *History) Window(n int) []HistoryEntry {
	if h == nil || n <= 0 {
		return nil
	}
	start := max(0, len(h.entries)-n)
	return append([]HistoryEntry(nil), h.entries[start:]...)
}

func (h *History) Latest() (HistoryEntry, bool) {
	if h.Len() == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series extracts one indicator over the whole log.
func (h *History) Series(ind Indicator) []Point {
	if h == nil {
		return nil
	}
	out := make([]Point, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, Point{Year: e.Year, Value: e.Indicators.Value(ind)})
	}
	return out
}

func (h *History) Trend(ind Indicator) (TrendDirection, error) {
	if h == nil {
		return TrendStable, nil
	}
	return Trend(h.entries, ind)
}
