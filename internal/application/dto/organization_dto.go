package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización.
type CreateOrganizationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateOrganizationRequest entrada para actualizar (campos opcionales).
type UpdateOrganizationRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrganizationListResponse listado paginado.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
