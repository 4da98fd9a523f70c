package db_models

import (
	"time"

	"github.com/google/uuid"
)

type ItineraryDay struct {
	BaseModel
	TripID uuid.UUID `gorm:"type:uuid;index:idx_trip_day_number,unique"`
	// 1-based and contiguous across a trip's days.
	DayNumber int `gorm:"index:idx_trip_day_number,unique"`
	Date      time.Time
	Summary   string

	Pois []DayPoi `gorm:"foreignKey:ItineraryDayID;constraint:OnDelete:CASCADE"`
}
