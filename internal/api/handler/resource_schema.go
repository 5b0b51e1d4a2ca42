package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createResourceRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
}

// updateResourceRequest serves PUT: both fields are mandatory.
type updateResourceRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
}

// patchResourceRequest serves PATCH: absent fields stay untouched.
type patchResourceRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

type resourceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   string    `json:"created_by"`
}

type listResourcesResponse struct {
	Items []resourceResponse `json:"items"`
	Total int                `json:"total"`
}
