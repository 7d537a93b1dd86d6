package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
)

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)
	h.successResponse(w, r, "profil récupéré", myProfile)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myProfile.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errorResponse(w, r, "ancien mot de passe incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myProfile.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateProfile(myProfile); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "mise à jour du mot de passe échouée, veuillez réessayer")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "mot de passe mis à jour", nil)
}
