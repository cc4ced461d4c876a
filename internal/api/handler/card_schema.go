package handler

import "time"

type addCardRequest struct {
	Kind        string `json:"kind"        validate:"required,oneof=skill project"`
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`
	Level       string `json:"level"       validate:"omitempty,oneof=beginner intermediate expert"`
}

type cardResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Level       string    `json:"level,omitempty"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

type revealRequestResponse struct {
	RequestID      string `json:"request_id"`
	AlreadyPending bool   `json:"already_pending,omitempty"`
}

type respondResponse struct {
	Status         string `json:"status"`
	Visibility     string `json:"visibility"`
	MatchAnnounced bool   `json:"match_announced,omitempty"`
}

type okResponse struct {
	Message string `json:"message"`
}
