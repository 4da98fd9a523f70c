package response_models

// Shapes the generation client validates provider output into. The
// synchronization engine consumes these as already-validated input.

type GeneratedPoi struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	StartTime   string  `json:"startTime"`
	DurationMin int     `json:"durationMin"`
	Note        string  `json:"note,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

type GeneratedDay struct {
	DayNumber int            `json:"dayNumber"`
	Summary   string         `json:"summary"`
	Pois      []GeneratedPoi `json:"pois"`
}

type GeneratedItinerary struct {
	Title       string         `json:"title"`
	Destination string         `json:"destination"`
	Days        []GeneratedDay `json:"days"`
}
