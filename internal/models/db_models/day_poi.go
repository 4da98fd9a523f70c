package db_models

import (
	"github.com/google/uuid"
)

// DayPoi binds a POI to an itinerary day at a position in the visit order.
type DayPoi struct {
	BaseModel
	ItineraryDayID uuid.UUID `gorm:"type:uuid;index:idx_day_visit_order,unique"`
	PoiID          uuid.UUID `gorm:"type:uuid;index"`
	// 1-based, contiguous and unique within the owning day.
	VisitOrder  int    `gorm:"index:idx_day_visit_order,unique"`
	StartTime   string // "HH:MM"
	DurationMin int
	Note        string

	Poi POI `gorm:"foreignKey:PoiID"`
}
