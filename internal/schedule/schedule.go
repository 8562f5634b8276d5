package schedule

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

// Visits at the unit happen on a fixed weekday; the portal only books the
// upcoming one.
const VisitWeekday = time.Wednesday

// DefaultTimezone is the portal's local timezone.
const DefaultTimezone = "America/Argentina/Cordoba"

// NextVisitDate returns the date of the next visit weekday strictly after
// today. When today already is the visit weekday it advances a full week,
// since same-day visits cannot be booked.
func NextVisitDate(now time.Time) time.Time {
	days := (int(VisitWeekday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

// ResolveTargetInstant computes the wall-clock instant at which submission
// should begin. An override of the form HH:MM or HH:MM:SS picks that time of
// day, rolled to tomorrow if it already passed. Without an override the
// target is the next 00:00:01: tomorrow's when the local hour is 12 or
// later, today's otherwise. A malformed override is logged and the default
// applies.
func ResolveTargetInstant(override string, now time.Time) time.Time {
	if override != "" {
		h, m, s, err := parseClock(override)
		if err != nil {
			log.Printf("schedule: invalid target time %q (%v), using default", override, err)
		} else {
			target := time.Date(now.Year(), now.Month(), now.Day(), h, m, s, 0, now.Location())
			if !target.After(now) {
				target = target.AddDate(0, 0, 1)
			}
			return target
		}
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 1, 0, now.Location())
	if now.Hour() >= 12 {
		target = target.AddDate(0, 0, 1)
	}
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

func parseClock(s string) (h, m, sec int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want HH:MM or HH:MM:SS")
	}
	h, err = strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, 0, fmt.Errorf("invalid hour")
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, 0, fmt.Errorf("invalid minute")
	}
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, 0, 0, fmt.Errorf("invalid second")
		}
	}
	return h, m, sec, nil
}
