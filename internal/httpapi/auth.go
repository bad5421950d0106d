package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/auth"
	"github.com/mnmarketlink/platform/internal/domain/users"
)

func registerAuthRoutes(mux *http.ServeMux, logger *slog.Logger, service users.Service, tokens *auth.TokenIssuer) {
	mux.HandleFunc("/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleAuthRegister(w, r, logger, service, tokens)
	})

	mux.HandleFunc("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleAuthLogin(w, r, logger, service, tokens)
	})
}

func handleAuthRegister(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service users.Service, tokens *auth.TokenIssuer) {
	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := service.Register(users.RegisterInput{
		Email:    payload.Email,
		Name:     payload.Name,
		Password: payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmailExists):
			respondError(w, http.StatusConflict, "email already in use")
		case errors.Is(err, users.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("register user failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	body, ok := sessionResponse(w, logger, tokens, user)
	if !ok {
		return
	}

	logger.Info("user registered", "user_id", user.ID)
	respondJSON(w, http.StatusCreated, body)
}

func handleAuthLogin(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service users.Service, tokens *auth.TokenIssuer) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound), errors.Is(err, users.ErrInvalidPassword):
			respondError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, users.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("authenticate user failed", "err", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	body, ok := sessionResponse(w, logger, tokens, user)
	if !ok {
		return
	}
	body["message"] = "login successful"

	respondJSON(w, http.StatusOK, body)
}

// sessionResponse issues an access token for the user and assembles the
// common register/login response body. On failure it writes the error
// response itself and reports ok=false.
func sessionResponse(w http.ResponseWriter, logger *slog.Logger, tokens *auth.TokenIssuer, user users.User) (map[string]any, bool) {
	token, err := tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.Error("token issue failed", "user_id", user.ID, "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}

	return map[string]any{
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
		"token": token,
	}, true
}
