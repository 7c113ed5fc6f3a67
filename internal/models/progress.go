package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DateKeyLayout is the day-granularity key format used for daily point buckets.
// All day comparisons happen in UTC; the engine never mixes date strings with
// full timestamps.
const DateKeyLayout = "2006-01-02"

// DailyPoints maps a YYYY-MM-DD key to the points accumulated that day.
// Stored as a JSONB column.
type DailyPoints map[string]float64

func (d DailyPoints) Value() (driver.Value, error) {
	if d == nil {
		d = DailyPoints{}
	}
	return json.Marshal(d)
}

func (d *DailyPoints) Scan(value interface{}) error {
	if value == nil {
		*d = DailyPoints{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported daily points column type %T", value)
	}
}

// UserProgress is the per-user aggregate root: streaks, session counters,
// weekly points and the unlocked badge set. One row per user, created
// implicitly on first recorded activity.
type UserProgress struct {
	UserID      string `gorm:"primaryKey;type:text" json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `gorm:"column:picture_url" json:"pictureUrl"`
	TeamID      string `gorm:"index" json:"teamId"`

	CurrentStreak int `gorm:"default:0" json:"currentStreak"`
	LongestStreak int `gorm:"default:0" json:"longestStreak"`

	TotalSessions     int `gorm:"default:0" json:"totalSessions"`
	SessionsToday     int `gorm:"default:0" json:"sessionsToday"`
	SessionsThisWeek  int `gorm:"default:0" json:"sessionsThisWeek"`
	SessionsThisMonth int `gorm:"default:0" json:"sessionsThisMonth"`

	WeeklyPoints      float64     `gorm:"default:0" json:"weeklyPoints"`
	DailyPointsByDate DailyPoints `gorm:"type:jsonb" json:"dailyPointsByDate"`

	// Day granularity, UTC midnight
	LastActivityDate *time.Time `json:"lastActivityDate"`

	// Append-only outside the league family (league badges are re-issued by
	// the weekly reset, never removed)
	UnlockedBadges pq.StringArray `gorm:"type:text[]" json:"unlockedBadges"`

	// Next scheduled cycle boundary (upcoming Sunday 00:00 UTC)
	WeeklyResetAt time.Time `json:"weeklyResetAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// HasBadge reports membership in the unlocked set.
func (p *UserProgress) HasBadge(id string) bool {
	for _, b := range p.UnlockedBadges {
		if b == id {
			return true
		}
	}
	return false
}

// AddBadge unions a badge identifier into the unlocked set. Returns true if
// the badge was newly added.
func (p *UserProgress) AddBadge(id string) bool {
	if id == "" || p.HasBadge(id) {
		return false
	}
	p.UnlockedBadges = append(p.UnlockedBadges, id)
	return true
}

// ActivitySession records one counted activity (a practice call). It is the
// source of historic active-date sets for streak consistency and calendars.
type ActivitySession struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	UserID     string    `gorm:"index;not null" json:"userId"`
	Points     float64   `json:"points"`
	OccurredOn time.Time `gorm:"index" json:"occurredOn"` // UTC midnight of the activity day
	CreatedAt  time.Time `json:"createdAt"`
}

func (ActivitySession) TableName() string {
	return "activity_sessions"
}

func (s *ActivitySession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return
}
