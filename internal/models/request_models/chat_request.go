package request_models

type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message" binding:"required"`
	History []ChatTurn `json:"history"`
}

type ApplyRequest struct {
	Message string `json:"message" binding:"required"`
}
