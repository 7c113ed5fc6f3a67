package services

import (
	"math"
	"time"

	"github.com/martinsvarc/visionboard-sub000/internal/models"
	"github.com/martinsvarc/visionboard-sub000/pkg/errors"
)

// ValidatePoints rejects negative and non-finite amounts. Called before any
// state is touched so invalid input never leaves a partial mutation.
func ValidatePoints(amount float64) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errors.BadRequest("points must be a non-negative finite number")
	}
	return nil
}

// ApplyPoints adds amount to the day's bucket and the weekly accumulator.
// When the weekly cycle was freshly started by the lazy catch-up, the weekly
// total restarts from this amount instead of accumulating onto stale points.
// Old daily buckets are retained across cycles for historical charts.
func ApplyPoints(p *models.UserProgress, amount float64, day time.Time, freshWeek bool) {
	if p.DailyPointsByDate == nil {
		p.DailyPointsByDate = models.DailyPoints{}
	}
	key := DayOf(day).Format(models.DateKeyLayout)
	p.DailyPointsByDate[key] += amount

	if freshWeek {
		p.WeeklyPoints = amount
	} else {
		p.WeeklyPoints += amount
	}
}
