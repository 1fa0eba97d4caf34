package dto

import "time"

type CreateIssueRequestDTO struct {
	Title        string  `json:"title" example:"School supplies"`
	Description  string  `json:"description,omitempty" example:"Notebooks and uniforms for the new term"`
	TargetAmount float64 `json:"target_amount" example:"250000"`
}

type IssueResponseDTO struct {
	ID           int       `json:"id" example:"1"`
	Title        string    `json:"title" example:"School supplies"`
	Description  string    `json:"description,omitempty" example:"Notebooks and uniforms for the new term"`
	TargetAmount float64   `json:"target_amount" example:"250000"`
	RaisedAmount float64   `json:"raised_amount" example:"13000"`
	CreatedAt    time.Time `json:"created_at" example:"2024-05-01T12:00:00+01:00"`
}
