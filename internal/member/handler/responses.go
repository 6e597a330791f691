package handler

import (
	"time"

	"backoffice/internal/domain"
)

// MemberResponse is the HTTP representation of a member.
type MemberResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	PhoneRegion string    `json:"phone_region"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromMember maps a domain member to its HTTP representation.
func FromMember(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID().String(),
		Email:       m.Email().String(),
		Name:        m.Name(),
		Phone:       m.Phone().Formatted(),
		PhoneRegion: string(m.Phone().Region()),
		Status:      string(m.Status()),
		CreatedAt:   m.CreatedAt(),
	}
}
