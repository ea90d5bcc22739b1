package dto

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	IsUser    bool   `json:"is_user"`
	CreatedAt string `json:"created_at"`
}
