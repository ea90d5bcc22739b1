package dto

type CreateDocumentRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	FileType string   `json:"file_type"`
}

type UpdateDocumentRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type DocumentResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	FileType  string   `json:"file_type"`
	CreatedBy string   `json:"created_by,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type ProcessDocumentRequest struct {
	DocumentID string `json:"documentId" validate:"required,uuid"`
}

type ProcessDocumentResponse struct {
	Success         bool   `json:"success"`
	ChunksProcessed int    `json:"chunksProcessed"`
	DocumentID      string `json:"documentId"`
}
