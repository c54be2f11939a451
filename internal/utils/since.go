package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSince supports today, yesterday, Nd / Nw shorthands, YYYY-MM-DD and RFC3339.
// Day-based forms resolve to local midnight relative to now.
func ParseSince(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	loc := now.Location()
	midnight := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	switch s {
	case "", "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), nil
	case "all":
		return time.Time{}, nil
	}

	if n := len(s); n > 1 && (s[n-1] == 'd' || s[n-1] == 'w') {
		if k, err := strconv.Atoi(s[:n-1]); err == nil && k >= 0 {
			days := k
			if s[n-1] == 'w' {
				days = k * 7
			}
			return midnight(now.AddDate(0, 0, -days)), nil
		}
	}

	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		t, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return time.Time{}, err
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, strings.ToUpper(s)); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (use today, yesterday, 7d, 2w, YYYY-MM-DD)", s)
}
