package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dkovac/relay/internal/service"
	"github.com/dkovac/relay/internal/token"
	"github.com/dkovac/relay/internal/transport/http/middleware"
	"github.com/dkovac/relay/pkg/validator"
)

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateSignup(input.FullName, input.Email, input.Password); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	user, tok, err := h.authService.Signup(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already exists")
		} else {
			log.Printf("ERROR signup: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	h.setAuthCookie(w, tok)
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateLogin(input.Email, input.Password); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	user, tok, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
		} else {
			log.Printf("ERROR login: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	h.setAuthCookie(w, tok)
	writeJSON(w, http.StatusOK, user)
}

// Logout clears the auth cookie. It does not touch any open live-delivery
// connection; that stays registered until the socket itself closes.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProfilePic string `json:"profilePic"`
	}
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if input.ProfilePic == "" {
		writeError(w, http.StatusBadRequest, "Profile pic is required")
		return
	}

	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.UpdateProfilePic(r.Context(), userID, input.ProfilePic)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
		} else {
			log.Printf("ERROR update profile: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
		} else {
			log.Printf("ERROR check auth: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(token.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
