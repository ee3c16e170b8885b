// file: model/request.go

package model

import "time"

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=4"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the authorization code returned by Google's
// consent screen.
type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// CreateMeetingRequest defines the payload for booking a meeting. The
// organizer is taken from the session, not the body.
type CreateMeetingRequest struct {
	Title      string    `json:"title" validate:"required"`
	Start      time.Time `json:"start" validate:"required"`
	End        time.Time `json:"end" validate:"required,gtfield=Start"`
	InvitedIDs []int     `json:"invitedIds"`
}

// UpdateMeetingRequest defines the payload for rewriting a meeting's title
// and invitee set.
type UpdateMeetingRequest struct {
	Title      string `json:"title" validate:"required"`
	InvitedIDs []int  `json:"invitedIds"`
}
