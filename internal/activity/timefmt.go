package activity

import (
	"fmt"
	"time"
)

// RelativeTime renders t relative to now: "42s atrás", "5m atrás", "3h atrás",
// "2d atrás", or "em 5m" for future instants.
func RelativeTime(now, t time.Time) string {
	secs := now.Sub(t).Seconds()
	abs := secs
	if abs < 0 {
		abs = -abs
	}

	unit, size := "d", 86400.0
	switch {
	case abs < 60:
		unit, size = "s", 1
	case abs < 3600:
		unit, size = "m", 60
	case abs < 86400:
		unit, size = "h", 3600
	}
	val := int64(abs / size)

	if secs >= 0 {
		return fmt.Sprintf("%d%s atrás", val, unit)
	}
	return fmt.Sprintf("em %d%s", val, unit)
}

// Countdown renders the time left until a group's event, or the time since
// it started.
func Countdown(now, eventAt time.Time) string {
	diff := eventAt.Sub(now)
	past := diff <= 0
	if diff < 0 {
		diff = -diff
	}

	total := int64(diff / time.Second)
	d := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60
	s := total % 60

	if past {
		return fmt.Sprintf("rolê começou há %dd %dh %dm %ds", d, h, m, s)
	}
	return fmt.Sprintf("falta %dd %dh %dm %ds", d, h, m, s)
}
