package response_models

type TripResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Preferences []string `json:"preferences,omitempty"`
}

type DayPoiResponse struct {
	ID          string  `json:"id"`
	PoiID       string  `json:"poi_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	VisitOrder  int     `json:"visit_order"`
	StartTime   string  `json:"start_time"`
	DurationMin int     `json:"duration_min"`
	Note        string  `json:"note,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

type ItineraryDayResponse struct {
	ID        string           `json:"id"`
	DayNumber int              `json:"day_number"`
	Date      string           `json:"date"`
	Summary   string           `json:"summary,omitempty"`
	Pois      []DayPoiResponse `json:"pois"`
}

type TripDetailResponse struct {
	TripResponse
	Description string                 `json:"description,omitempty"`
	Note        string                 `json:"note,omitempty"`
	Days        []ItineraryDayResponse `json:"days"`
}

type PoiResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}
