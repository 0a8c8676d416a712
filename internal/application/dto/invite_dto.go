package dto

import "time"

// CreateInviteRequest entrada para crear una invitación de organización.
type CreateInviteRequest struct {
	Email     string `json:"email" validate:"omitempty,email"`
	Role      string `json:"role" validate:"omitempty,oneof=admin bodeguero operador"`
	ExpiresIn int    `json:"expires_in_hours" validate:"omitempty,min=1,max=720"`
}

// InviteResponse salida de una invitación.
type InviteResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Token          string    `json:"token"`
	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role"`
	ExpiresAt      time.Time `json:"expires_at"`
	Accepted       bool      `json:"accepted"`
	CreatedAt      time.Time `json:"created_at"`
}

// AcceptInviteRequest entrada para aceptar una invitación por token.
type AcceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

// InviteListResponse listado de invitaciones.
type InviteListResponse struct {
	Items []InviteResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
