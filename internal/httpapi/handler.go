// Package httpapi exposes tally's auth and todo operations over HTTP.
//
// It owns request decoding, the cookie transport for session tokens, and the
// mapping from domain errors to status codes. Business rules live below it in
// account, session and todo.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/account"
	"tally/internal/identity"
	"tally/internal/session"
	"tally/internal/todo"
)

// Handler wires HTTP endpoints to the account and todo services.
type Handler struct {
	log *slog.Logger
	cfg Config

	accounts *account.Service
	todos    *todo.Service
	resolver *session.Resolver
}

// NewHandler constructs the API handler.
func NewHandler(log *slog.Logger, cfg Config, accounts *account.Service, todos *todo.Service, resolver *session.Resolver) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if accounts == nil {
		return nil, errors.New("httpapi: nil account service")
	}
	if todos == nil {
		return nil, errors.New("httpapi: nil todo service")
	}
	if resolver == nil {
		return nil, errors.New("httpapi: nil resolver")
	}
	if cfg.CookieName == "" {
		cfg = DefaultConfig()
	}

	return &Handler{
		log:      log,
		cfg:      cfg,
		accounts: accounts,
		todos:    todos,
		resolver: resolver,
	}, nil
}

// Register wires the API routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /signup", h.handleSignup)
	mux.HandleFunc("POST /signin", h.handleSignin)
	mux.HandleFunc("POST /signout", h.handleSignout)
	mux.HandleFunc("GET /me", h.handleMe)
	mux.HandleFunc("GET /todos", h.handleTodoList)
	mux.HandleFunc("POST /todos", h.handleTodoCreate)
	mux.HandleFunc("GET /todos/{id}", h.handleTodoGet)
	mux.HandleFunc("PUT /todos/{id}", h.handleTodoUpdate)
	mux.HandleFunc("DELETE /todos/{id}", h.handleTodoDelete)
}

// ---- auth handlers ----

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	user, token, err := h.accounts.Register(r.Context(), account.RegisterInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		RetypePassword: req.RetypePassword,
	})
	if err != nil {
		h.writeAccountError(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, authResponse{
		User:    user,
		Session: sessionResponse{Token: token},
	})
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	user, token, err := h.accounts.Authenticate(r.Context(), account.CredentialsInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeAccountError(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, authResponse{
		User:    user,
		Session: sessionResponse{Token: token},
	})
}

func (h *Handler) handleSignout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authenticate(w, r); !ok {
		return
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "signed out"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, principal.Public())
}

// ---- todo handlers ----

func (h *Handler) handleTodoList(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	items, err := h.todos.List(r.Context(), principal)
	if err != nil {
		h.writeTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoListResponse(items))
}

func (h *Handler) handleTodoCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	t, err := h.todos.Create(r.Context(), principal, req.Title)
	if err != nil {
		h.writeTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todoEnvelope{Todo: toTodoResponse(t)})
}

func (h *Handler) handleTodoGet(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	t, err := h.todos.Get(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		h.writeTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todoEnvelope{Todo: toTodoResponse(t)})
}

func (h *Handler) handleTodoUpdate(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	t, err := h.todos.Update(r.Context(), principal, r.PathValue("id"), todo.UpdateInput{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		h.writeTodoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todoEnvelope{Todo: toTodoResponse(t)})
}

func (h *Handler) handleTodoDelete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	if err := h.todos.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		h.writeTodoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- shared plumbing ----

// authenticate resolves the caller or writes the single 401 classification.
// Every failure mode (no token, bad token, expired token, deleted account)
// produces the same response body.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	principal, err := h.resolver.Resolve(r.Context(), h.sessionToken(r))
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "not authenticated")
		} else {
			h.internalError(w, r, err)
		}
		return identity.User{}, false
	}
	return principal, true
}

func (h *Handler) writeAccountError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case identity.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, "validation_error", publicMessage(err))
	case identity.IsConflict(err):
		writeError(w, http.StatusConflict, "email_taken", "email already registered")
	case errors.Is(err, account.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	default:
		h.internalError(w, r, err)
	}
}

func (h *Handler) writeTodoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case todo.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, "validation_error", publicMessage(err))
	case todo.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", "todo not found")
	case todo.IsForbidden(err):
		writeError(w, http.StatusForbidden, "forbidden", "not allowed to access this todo")
	default:
		h.internalError(w, r, err)
	}
}

// internalError logs the cause with the request correlation id and reports a
// single generic message. Store errors and stack state never cross here.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("http.internal_error",
		"err", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", w.Header().Get("X-Request-Id"),
	)
	writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
}

// publicMessage extracts the human-readable part of a validation error
// without the internal op prefix.
func publicMessage(err error) string {
	var ie identity.OpError
	if errors.As(err, &ie) && ie.Msg != "" {
		return ie.Msg
	}
	var te todo.OpError
	if errors.As(err, &te) && te.Msg != "" {
		return te.Msg
	}
	return "invalid input"
}
