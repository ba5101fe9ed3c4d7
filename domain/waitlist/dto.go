package waitlist

import (
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
)

// Signup messages are part of the public contract consumed by the frontend;
// do not reword them.
const (
	MessageSignupSuccess = "Successfully joined the waitlist!"
	MessageEmailExists   = "Email already registered!"
)

type SignupRequest struct {
	Email   string `json:"email" binding:"required"`
	Website string `json:"website"`
}

// SignupResponse reports the outcome of a signup attempt. A duplicate email
// is a normal outcome carried by Success=false, not an error.
type SignupResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	TotalSignups int64  `json:"total_signups"`
}

type StatsResponse struct {
	TotalSignups int64 `json:"total_signups"`
}

type EntryResponse struct {
	Email     string `json:"email"`
	Website   string `json:"website"`
	CreatedAt string `json:"created_at"`
}

type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ========================================
// Mappers
// ========================================

func ToEntryResponse(entry *models.WaitlistEntry) EntryResponse {
	if entry == nil {
		return EntryResponse{}
	}
	return EntryResponse{
		Email:     entry.Email,
		Website:   entry.Website,
		CreatedAt: entry.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}

func ToListEntriesResponse(entries []*models.WaitlistEntry) *ListEntriesResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToEntryResponse(entry))
	}
	return &ListEntriesResponse{Entries: responses}
}
