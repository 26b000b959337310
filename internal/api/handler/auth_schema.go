package handler

import "strings"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Language string `json:"language"`
}

func (r *registerRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type preferencesRequest struct {
	Language string `json:"language"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Language string `json:"language"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

type preferencesResponse struct {
	Language string `json:"language"`
}
