package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CronSchedule is a restricted five-field cron expression. Minute, hour and
// day-of-week accept a number or "*"; day-of-month and month must be "*".
// That covers the maintenance schedules this service runs (hourly, daily,
// weekly) without pulling in a full cron engine.
type CronSchedule struct {
	Minute    int // -1 means every minute
	Hour      int // -1 means every hour
	DayOfWeek int // -1 means every day; 0 is Sunday
}

// ParseCronSchedule parses an expression like "0 3 * * *" (daily at 03:00),
// "15 * * * *" (hourly at minute 15) or "30 3 * * 0" (Sundays at 03:30)
func ParseCronSchedule(expr string) (CronSchedule, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return CronSchedule{}, fmt.Errorf("invalid cron expression %q: expected 5 fields, got %d", expr, len(fields))
	}

	minute, err := parseCronField(fields[0], 0, 59)
	if err != nil {
		return CronSchedule{}, fmt.Errorf("invalid minute in %q: %w", expr, err)
	}
	hour, err := parseCronField(fields[1], 0, 23)
	if err != nil {
		return CronSchedule{}, fmt.Errorf("invalid hour in %q: %w", expr, err)
	}
	if fields[2] != "*" || fields[3] != "*" {
		return CronSchedule{}, fmt.Errorf("invalid cron expression %q: day-of-month and month must be *", expr)
	}
	dayOfWeek, err := parseCronField(fields[4], 0, 6)
	if err != nil {
		return CronSchedule{}, fmt.Errorf("invalid day-of-week in %q: %w", expr, err)
	}

	return CronSchedule{Minute: minute, Hour: hour, DayOfWeek: dayOfWeek}, nil
}

func parseCronField(field string, minValue, maxValue int) (int, error) {
	if field == "*" {
		return -1, nil
	}
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number or *", field)
	}
	if value < minValue || value > maxValue {
		return 0, fmt.Errorf("%d out of range [%d,%d]", value, minValue, maxValue)
	}
	return value, nil
}

// Matches reports whether the schedule fires at the given time,
// at minute granularity
func (s CronSchedule) Matches(t time.Time) bool {
	if s.Minute >= 0 && t.Minute() != s.Minute {
		return false
	}
	if s.Hour >= 0 && t.Hour() != s.Hour {
		return false
	}
	if s.DayOfWeek >= 0 && int(t.Weekday()) != s.DayOfWeek {
		return false
	}
	return true
}
