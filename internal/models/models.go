package models

import "time"

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request is the uniform request envelope accepted at the system boundary.
// Query carries SQL text for relational backends; document backends read
// everything from Parameters. Parameters is a positional sequence ([]any)
// for relational binding or a mapping (map[string]any) for document
// operations. Query content is treated as opaque: the caller is trusted.
type Request struct {
	DBType     string `json:"db_type"`
	Operation  string `json:"operation"`
	Query      string `json:"query,omitempty"`
	Parameters any    `json:"parameters,omitempty"`
	CacheKey   string `json:"cache_key,omitempty"`
}

// Response is the uniform response envelope. Exactly one of Data and Error
// is present, gated by Status; FromCache is carried on success only.
// Timestamp is the creation time of the response, not of the underlying
// data.
type Response struct {
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	FromCache *bool  `json:"from_cache,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Success builds a success response around a data payload
func Success(data any, fromCache bool) Response {
	return Response{
		Status:    StatusSuccess,
		Data:      data,
		FromCache: &fromCache,
		Timestamp: time.Now().Unix(),
	}
}

// Error builds an error response from a human-readable message
func Error(message string) Response {
	return Response{
		Status:    StatusError,
		Error:     message,
		Timestamp: time.Now().Unix(),
	}
}

// IsSuccess reports whether the response carries data
func (r Response) IsSuccess() bool {
	return r.Status == StatusSuccess
}
