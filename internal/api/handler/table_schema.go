package handler

import "time"

type createTableRequest struct {
	Name        string   `json:"name"         validate:"required,min=1"`
	Capacity    int      `json:"capacity"     validate:"required,gte=2,lte=12"`
	DurationMin int      `json:"duration_min" validate:"required,gte=5,lte=240"`
	Focus       []string `json:"focus"`
}

type tableResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	DurationMin int       `json:"duration_min"`
	Focus       []string  `json:"focus,omitempty"`
	OrganizerID string    `json:"organizer_id"`
	Members     []string  `json:"members"`
	MemberCount int       `json:"member_count"`
	Open        bool      `json:"open"`
	CreatedAt   time.Time `json:"created_at"`
}

type joinTableResponse struct {
	TableID     string `json:"table_id"`
	MemberCount int    `json:"member_count"`
}
