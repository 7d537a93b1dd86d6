package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/utils"
)

// CreateInterimaire registers a worker profile under the calling agency and
// emails the generated initial password as an invitation.
func (h *Handler) CreateInterimaire(w http.ResponseWriter, r *http.Request) {
	myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)

	var req struct {
		Email     string  `json:"email" validate:"required,email"`
		FirstName string  `json:"firstName" validate:"required"`
		LastName  string  `json:"lastName" validate:"required"`
		Phone     *string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// early check for a friendly message; the unique constraint below still
	// catches a race with a concurrent registration
	exists, err := h.repository.CheckEmailIfExists(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if exists {
		h.errorResponse(w, r, "cet email est déjà utilisé")
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	agencyID := myProfile.ID
	profile := &domain.Profile{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         domain.RoleInterimaire,
		AgencyID:     &agencyID,
		AgencyName:   myProfile.AgencyName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	}

	if err := h.repository.CreateProfile(profile); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "profiles_email_key":
			h.errorResponse(w, r, "cet email est déjà utilisé")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	agencyName := ""
	if myProfile.AgencyName != nil {
		agencyName = *myProfile.AgencyName
	}

	mailMessage := domain.MailMessage{
		Type: "invitation",
		To:   profile.Email,
		Data: domain.InvitationMailData{
			FirstName:  profile.FirstName,
			AgencyName: agencyName,
			Email:      profile.Email,
			Password:   password,
		},
	}

	// the invitation carries the only copy of the initial password, so a
	// publish failure has to surface
	if err := h.notifier.PublishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "intérimaire créé, invitation envoyée", profile)
}

func (h *Handler) GetMyInterimaires(w http.ResponseWriter, r *http.Request) {
	myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)

	profiles, err := h.repository.GetInterimairesByAgency(myProfile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "intérimaires récupérés", profiles)
}
