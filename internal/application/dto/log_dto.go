package dto

import "time"

// LogResponse entrada da trilha de auditoria.
type LogResponse struct {
	ID             string    `json:"id"`
	Action         string    `json:"action"`
	Description    string    `json:"description"`
	UserName       string    `json:"user_name"`
	UserID         string    `json:"user_id,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// LogListResponse lista paginada de entradas de auditoria (mais recentes primeiro).
type LogListResponse struct {
	Items []LogResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
