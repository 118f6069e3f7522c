package devapi

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/validation"
	"github.com/jrsteele09/go-storefront-client/orders"
	"github.com/jrsteele09/go-storefront-client/products"
	"github.com/rs/zerolog/log"
)

const refreshTokenBytes = 32

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginHandler issues a signed access token and an opaque refresh token.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, ok := s.users.Authenticate(req.Email, req.Password)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		access, err := s.issuer.Issue(user.ID, user.Email, user.IsAdmin)
		if err != nil {
			log.Error().Err(err).Str("email", user.Email).Msg("[LoginHandler] issue access token")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		refresh, err := newRefreshToken()
		if err != nil {
			log.Error().Err(err).Msg("[LoginHandler] generate refresh token")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, loginResponse{AccessToken: access, RefreshToken: refresh})
	}
}

// RegisterHandler creates a non-admin account.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=6"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !validBody(w, req) {
			return
		}

		user, err := s.users.Create(req.Email, req.Password, false)
		if apperrors.Is(err, apperrors.ErrConflict) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("[RegisterHandler] create user")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) ListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.catalog.List(r.URL.Query().Get("q")))
	}
}

func (s *Server) GetProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.catalog.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) CreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload products.CreatePayload
		if err := readJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !validBody(w, payload) {
			return
		}
		writeJSON(w, http.StatusCreated, s.catalog.Create(payload))
	}
}

func (s *Server) UpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload products.UpdatePayload
		if err := readJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !validBody(w, payload) {
			return
		}
		p, err := s.catalog.Update(r.PathValue("id"), payload)
		if err != nil {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.catalog.Delete(r.PathValue("id")); err != nil {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListOrdersHandler filters by the optional startDate and endDate query parameters (YYYY-MM-DD).
func (s *Server) ListOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := parseDate(r.URL.Query().Get("startDate"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		end, err := parseDate(r.URL.Query().Get("endDate"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		writeJSON(w, http.StatusOK, s.orders.List(start, end))
	}
}

// validBody writes a 400 listing every failed rule and reports whether v passed.
func validBody(w http.ResponseWriter, v any) bool {
	err := validation.Struct(v)
	if err == nil {
		return true
	}
	var verr *validation.Error
	if apperrors.As(err, &verr) {
		msgs := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			msgs = append(msgs, f.Message)
		}
		writeError(w, http.StatusBadRequest, msgs)
		return false
	}
	writeError(w, http.StatusBadRequest, err.Error())
	return false
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(orders.DateLayout, v)
}

func newRefreshToken() (string, error) {
	tokenBytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", apperrors.Wrapf(err, "[newRefreshToken] read random bytes")
	}
	return hex.EncodeToString(tokenBytes), nil
}
