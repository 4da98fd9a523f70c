package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Trip struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Destination string
	// Date-only semantics; stored at midnight UTC. EndDate is inclusive.
	StartDate   time.Time
	EndDate     time.Time
	Preferences pq.StringArray `gorm:"type:text[]"`
	Description string
	Note        string

	Days []ItineraryDay `gorm:"constraint:OnDelete:CASCADE"`
}

// DaySpan is the inclusive number of days between StartDate and EndDate.
func (t *Trip) DaySpan() int {
	return DaySpan(t.StartDate, t.EndDate)
}

func DaySpan(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
