package handler

import (
	"time"

	"github.com/vetclinic/user-service/internal/core/domain"
)

// Envelope is the JSON shape of every response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds an error envelope. code is the stable error code, if any.
func Fail(message, code string) Envelope {
	return Envelope{Success: false, Message: message, Error: code}
}

type roleResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// userResponse is the sanitized user projection; it never carries the hash.
type userResponse struct {
	ID                 uint         `json:"id"`
	FullName           string       `json:"fullname"`
	Telephone          string       `json:"telephone"`
	Address            string       `json:"address"`
	Email              string       `json:"email"`
	IsActive           bool         `json:"isActive"`
	MustChangePassword bool         `json:"mustChangePassword"`
	Role               roleResponse `json:"role"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		FullName:           u.FullName,
		Telephone:          u.Telephone,
		Address:            u.Address,
		Email:              u.Email,
		IsActive:           u.IsActive,
		MustChangePassword: u.MustChangePassword,
		Role:               roleResponse{ID: u.Role.ID, Name: string(u.Role.Name)},
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

type paginationResponse struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalUsers   int64 `json:"totalUsers"`
	UsersPerPage int   `json:"usersPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

type userPageResponse struct {
	Users      []userResponse     `json:"users"`
	Pagination paginationResponse `json:"pagination"`
}

func toUserPageResponse(p *domain.UserPage) userPageResponse {
	return userPageResponse{
		Users: toUserResponses(p.Users),
		Pagination: paginationResponse{
			CurrentPage:  p.Page,
			TotalPages:   p.TotalPages,
			TotalUsers:   p.Total,
			UsersPerPage: p.Limit,
			HasNextPage:  p.HasNext(),
			HasPrevPage:  p.HasPrev(),
		},
	}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type verifyResponse struct {
	User userResponse `json:"user"`
}
