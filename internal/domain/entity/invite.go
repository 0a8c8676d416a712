package entity

import "time"

// Invite invitación a unirse a una organización. El token se entrega como
// código QR para escanear desde el cliente.
type Invite struct {
	ID             string
	OrganizationID string
	Token          string
	Email          string // opcional: invitación dirigida
	Role           string // rol que recibirá quien acepte
	ExpiresAt      time.Time
	AcceptedBy     string // UserID, vacío mientras esté pendiente
	AcceptedAt     *time.Time
	CreatedAt      time.Time
	CreatedBy      string
}

// Pending reporta si la invitación sigue siendo usable en el instante dado.
func (i *Invite) Pending(now time.Time) bool {
	return i.AcceptedBy == "" && now.Before(i.ExpiresAt)
}
