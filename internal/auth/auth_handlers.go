package auth

import (
	"net/http"

	"github.com/rs/zerolog"

	"todo-app/internal/api"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandlers struct {
	Service *AuthService
}

func NewAuthHandlers(service *AuthService) *AuthHandlers {
	return &AuthHandlers{Service: service}
}

func (h *AuthHandlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, r, err)
		return
	}

	result, err := h.Service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("user_id", result.User.ID).Msg("user registered")
	api.WriteJSON(w, http.StatusOK, result)
}

func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := api.DecodeJSON(w, r, &creds); err != nil {
		api.WriteError(w, r, err)
		return
	}

	result, err := h.Service.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, result)
}
