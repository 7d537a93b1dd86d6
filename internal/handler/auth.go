package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/utils"
)

const sessionCookieName = "__plurirh_timesheet_token"

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	profile, err := h.repository.GetProfileByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "email inconnu ou mot de passe incorrect")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "email inconnu ou mot de passe incorrect")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(profile.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   profile.ID.String(),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	// last_login_at is informational only, a failure must not block login
	if err := h.repository.TouchLastLogin(profile.ID); err != nil {
		slog.Error("mise à jour de last_login_at échouée", "profile", profile.ID, "error", err)
	}

	h.successResponse(w, r, "connexion réussie", profile)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "déconnexion réussie", nil)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	profile, err := h.repository.GetProfileByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// the account does not exist, but say the mail was sent anyway
			// so the endpoint cannot be used to probe addresses
			h.successResponse(w, r, "le code de réinitialisation a été envoyé par email", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, fmt.Sprintf("otp_%s_reset_password", profile.Email), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "reset_password",
		To:   profile.Email,
		Data: domain.ResetPasswordMailData{
			FullName:   profile.FullName(),
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // affiché en minutes dans l'email
		},
	}

	if err := h.notifier.PublishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "le code de réinitialisation a été envoyé par email", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, fmt.Sprintf("otp_%s_reset_password", req.Email)).Result()
	if err != nil {
		h.errorResponse(w, r, "code de vérification incorrect")
		return
	}

	if otp != req.OTP {
		h.errorResponse(w, r, "code de vérification incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	profile, err := h.repository.GetProfileByEmail(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	profile.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateProfile(profile); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "veuillez réessayer")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.redisClient.Del(ctx, fmt.Sprintf("otp_%s_reset_password", req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "mot de passe réinitialisé", nil)
}
