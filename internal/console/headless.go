package console

import (
	"fmt"
	"io"
)

// Headless simulates years without interaction and writes the final status.
func (s *Session) Headless(out io.Writer, years int) error {
	res := s.Simulate(years)
	if _, err := fmt.Fprintln(out, res.Message); err != nil {
		return err
	}
	if res.YearsAdvanced == 0 && years > 0 {
		return fmt.Errorf("no years simulated from %d", s.state.Year)
	}
	return nil
}
