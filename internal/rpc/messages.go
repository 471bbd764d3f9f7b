package rpc

import "github.com/ANITHAC1201/joicy/internal/users"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User users.Summary `json:"user"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  users.Identity `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	User users.Identity `json:"user"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []users.Summary `json:"users"`
}

type DeleteUserRequest struct {
	ID int64 `json:"id"`
}

type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

type StatsRequest struct{}

type StatsResponse struct {
	Stats users.Stats `json:"stats"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
