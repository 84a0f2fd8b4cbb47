package dto

// ChatRequest represents a question sent to the recycling assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse represents the assistant's answer
type ChatResponse struct {
	Response string `json:"response"`
}
