package dto

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type SourceDocument struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	Category   string  `json:"category"`
}

type ChatResponse struct {
	Response        string           `json:"response"`
	Source          string           `json:"source"`
	SourceDocuments []SourceDocument `json:"sourceDocuments"`
}

// ChatErrorResponse is the well-formed body returned on an unhandled chat
// failure. The user always gets an apology string, never a raw error.
type ChatErrorResponse struct {
	Error           string           `json:"error"`
	Response        string           `json:"response"`
	Source          string           `json:"source"`
	SourceDocuments []SourceDocument `json:"sourceDocuments"`
}
