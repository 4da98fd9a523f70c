package response_models

type ChatReplyResponse struct {
	Reply string `json:"reply"`
	// True when the streamed transport failed and the reply came from the
	// non-streaming fallback call.
	UsedFallback bool `json:"used_fallback,omitempty"`
}

type IntentPreviewResponse struct {
	NextStartDate  string   `json:"next_start_date"`
	NextEndDate    string   `json:"next_end_date"`
	HasChange      bool     `json:"has_change"`
	ReferencedDays []int    `json:"referenced_days,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

type ApplyResultResponse struct {
	DatePatched     bool                `json:"date_patched"`
	RegeneratedDays []int               `json:"regenerated_days,omitempty"`
	FullRegenerated bool                `json:"full_regenerated"`
	Trip            *TripDetailResponse `json:"trip"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
