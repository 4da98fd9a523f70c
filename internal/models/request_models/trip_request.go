package request_models

type CreateTripRequest struct {
	Title       string   `json:"title" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string   `json:"end_date" binding:"required"`   // YYYY-MM-DD, inclusive
	Preferences []string `json:"preferences"`
	Description string   `json:"description"`
	Note        string   `json:"note"`
}

type PatchTripRequest struct {
	Title       *string   `json:"title"`
	Preferences *[]string `json:"preferences"`
	Description *string   `json:"description"`
	Note        *string   `json:"note"`
}

type PatchTripDatesRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type GenerateDayRequest struct {
	EditRequest string `json:"edit_request"`
}

type ReorderDayPoisRequest struct {
	OrderedIds []string `json:"ordered_ids" binding:"required"`
}

type AddDayPoiRequest struct {
	PoiID       string `json:"poi_id" binding:"required"`
	StartTime   string `json:"start_time"`
	DurationMin int    `json:"duration_min"`
	Note        string `json:"note"`
}
