package mealplan

import (
	"fmt"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

const minutesPerDay = 24 * 60

// parseHHMM parses a "HH:MM" clock time into minutes since midnight.
func parseHHMM(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, domain.WrapEngineError(domain.ErrBadTimeFormat.Code, fmt.Sprintf("bad time %q", s), err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, domain.NewEngineError(domain.ErrBadTimeFormat.Code, fmt.Sprintf("bad time %q", s))
	}
	return h*60 + m, nil
}

// formatHHMM renders minutes since midnight, wrapping past midnight.
func formatHHMM(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// windowSpan resolves a timing window to absolute minutes on a timeline
// anchored at the given day start. An end at or before the start is read
// as spanning midnight.
func windowSpan(w domain.TimingWindow, dayStart int) (int, int, error) {
	start, err := parseHHMM(w.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseHHMM(w.End)
	if err != nil {
		return 0, 0, err
	}
	if start < dayStart {
		start += minutesPerDay
	}
	if end <= start {
		end += minutesPerDay
	}
	return start, end, nil
}
