package httpapi

import (
	"time"

	"tally/internal/identity"
	"tally/internal/todo"
)

type signupRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RetypePassword string `json:"retype_password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTodoRequest struct {
	Title string `json:"title"`
}

type updateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"is_completed"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

type authResponse struct {
	User    identity.PublicUser `json:"user"`
	Session sessionResponse     `json:"session"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type todoResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"is_completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type todoEnvelope struct {
	Todo todoResponse `json:"todo"`
}

type todoListResponse struct {
	Todos []todoResponse `json:"todos"`
}

func toTodoResponse(t todo.Todo) todoResponse {
	return todoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTodoListResponse(items []todo.Todo) todoListResponse {
	out := todoListResponse{Todos: make([]todoResponse, 0, len(items))}
	for _, t := range items {
		out.Todos = append(out.Todos, toTodoResponse(t))
	}
	return out
}
