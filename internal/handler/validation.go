package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/repository"
)

// tokenResolution is what the validation page renders from: the state
// decides the screen, and the timesheet is only attached while the token
// is still actionable.
type tokenResolution struct {
	State     domain.TokenState `json:"state"`
	Timesheet *domain.Timesheet `json:"timesheet,omitempty"`
}

var tokenStateMessages = map[domain.TokenState]string{
	domain.TokenStateUnknown:  "ce lien de validation n'existe pas ou est incorrect",
	domain.TokenStateExpired:  "ce lien de validation a expiré, veuillez contacter l'agence",
	domain.TokenStateConsumed: "ce relevé d'heures a déjà été validé",
	domain.TokenStateValid:    "jeton de validation valide",
}

// ResolveValidationToken classifies a token on every access, fresh: no
// state is cached between requests, the decision endpoint re-checks
// consumption transactionally anyway.
func (h *Handler) ResolveValidationToken(w http.ResponseWriter, r *http.Request) {
	tokenString := chi.URLParam(r, "token")

	token, ts, err := h.repository.GetValidationTokenWithTimesheet(tokenString)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, tokenStateMessages[domain.TokenStateUnknown], tokenResolution{State: domain.TokenStateUnknown})
		default:
			// store unreachable is a transient failure, not a token state:
			// the caller may retry the resolve itself
			h.internalServerError(w, r, err)
		}
		return
	}

	state := domain.ResolveTokenState(token, time.Now())
	resolution := tokenResolution{State: state}
	if state == domain.TokenStateValid {
		resolution.Timesheet = ts
		go h.notifier.NotifyConsultation(token)
	}

	h.successResponse(w, r, tokenStateMessages[state], resolution)
}

// DecideValidation applies an approve/reject decision against a token. The
// repository's guarded token update is the linearization point: of two
// concurrent decisions exactly one wins, the other gets a conflict distinct
// from a broken link.
func (h *Handler) DecideValidation(w http.ResponseWriter, r *http.Request) {
	tokenString := chi.URLParam(r, "token")

	var req struct {
		Action         string  `json:"action" validate:"required,oneof=approve reject"`
		Comment        *string `json:"comment"`
		ValidatorName  *string `json:"validatorName"`
		ValidatorEmail *string `json:"validatorEmail" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status := domain.TimesheetStatusRejected
	if req.Action == "approve" {
		status = domain.TimesheetStatusApproved
	}

	ts, err := h.repository.ConsumeTokenAndDecide(tokenString, repository.Decision{
		Status:         status,
		Comment:        req.Comment,
		ValidatorName:  req.ValidatorName,
		ValidatorEmail: req.ValidatorEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, tokenStateMessages[domain.TokenStateUnknown])
		case errors.Is(err, domain.ErrTokenExpired):
			h.errorResponse(w, r, tokenStateMessages[domain.TokenStateExpired])
		case errors.Is(err, domain.ErrTokenConflict):
			// someone already acted on this, which is not a broken link
			h.errorResponse(w, r, "une décision a déjà été enregistrée pour ce relevé")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	go h.notifyDecision(ts)

	if status == domain.TimesheetStatusApproved {
		h.successResponse(w, r, "relevé approuvé", ts)
		return
	}
	h.successResponse(w, r, "relevé rejeté", ts)
}

// notifyDecision resolves the agency contact and dispatches the decision
// notifications. Runs detached from the request: the decision is durable
// whatever happens here.
func (h *Handler) notifyDecision(ts *domain.Timesheet) {
	agencyEmail := ""
	if ts.AgencyID != nil {
		agency, err := h.repository.GetProfileByID(*ts.AgencyID)
		if err != nil {
			slog.Error("profil de l'agence introuvable pour la notification", "timesheet", ts.ID, "error", err)
		} else {
			agencyEmail = agency.Email
		}
	}

	h.notifier.NotifyDecision(ts, agencyEmail)
}
