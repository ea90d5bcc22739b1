package service

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrEmptyDocument      = errors.New("no valid chunks created from document")
	ErrEmbeddingFailure   = errors.New("failed to generate any embeddings")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)
