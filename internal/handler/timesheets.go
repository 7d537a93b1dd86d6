package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/utils"
	"github.com/pluri-rh/timesheet-manager/backend/internal/workweek"
)

// SubmitTimesheet validates and persists a weekly timesheet, issues the
// single-use validation token, and dispatches the submission notifications.
// Persistence failures abort the operation; everything after the insert is
// best-effort and never rolls the submission back.
func (h *Handler) SubmitTimesheet(w http.ResponseWriter, r *http.Request) {
	myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)

	var req struct {
		Employee struct {
			FirstName string `json:"firstName" validate:"required"`
			LastName  string `json:"lastName" validate:"required"`
			PluriRH   string `json:"pluriRH" validate:"required"`
		} `json:"employee" validate:"required"`
		Company struct {
			Name           string `json:"name" validate:"required"`
			Email          string `json:"email" validate:"required,email"`
			ContractNumber string `json:"contractNumber" validate:"required"`
			Location       string `json:"location" validate:"required"`
		} `json:"company" validate:"required"`
		WeekStart     string             `json:"weekStart" validate:"required,datetime=2006-01-02"`
		Hours         workweek.WeekHours `json:"hours" validate:"required"`
		Comments      string             `json:"comments"`
		MissionStatus string             `json:"missionStatus" validate:"required,oneof='En cours' 'Terminée' 'Suspendue'"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekStart, err := time.ParseInLocation("2006-01-02", req.WeekStart, time.UTC)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	agencyID := resolveAgencyID(myProfile)
	if agencyID == nil {
		// a missing agency link degrades the record to an orphan, which
		// breaks the agency dashboards later: keep it loud in the logs
		slog.Warn("soumission sans agence rattachée", "profile", myProfile.ID, "email", myProfile.Email)
	}

	draft := domain.TimesheetDraft{
		Employee: domain.Employee{
			FirstName: req.Employee.FirstName,
			LastName:  req.Employee.LastName,
			PluriRH:   req.Employee.PluriRH,
		},
		Company: domain.Company{
			Name:           req.Company.Name,
			Email:          req.Company.Email,
			ContractNumber: req.Company.ContractNumber,
			Location:       req.Company.Location,
		},
		WeekStart:     weekStart,
		Hours:         req.Hours,
		Comments:      req.Comments,
		MissionStatus: domain.MissionStatus(req.MissionStatus),
	}

	ts, err := domain.BuildTimesheet(draft, myProfile.ID, agencyID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoHoursReported):
			h.errorResponse(w, r, "aucune heure déclarée : rien à soumettre")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.CreateTimesheet(ts); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	token := &domain.ValidationToken{
		Token:       utils.GenerateValidationToken(),
		TimesheetID: ts.ID,
		ExpiresAt:   time.Now().Add(time.Duration(h.config.ValidationToken.Expiration) * time.Second),
	}
	if err := h.repository.CreateValidationToken(token); err != nil {
		// the submission is already durable; the agency can reissue the
		// link, so only the notification step is skipped
		slog.Error("création du jeton de validation échouée", "timesheet", ts.ID, "error", err)
		h.successResponse(w, r, "relevé soumis, envoi au client à refaire", ts)
		return
	}

	go h.notifier.NotifySubmission(ts, myProfile, token)

	h.successResponse(w, r, "relevé soumis", ts)
}

// resolveAgencyID derives the authorization linkage stored on the record:
// an agency submits under its own id, a worker under its agency.
func resolveAgencyID(p *domain.Profile) *uuid.UUID {
	switch p.Role {
	case domain.RoleAgence:
		id := p.ID
		return &id
	default:
		return p.AgencyID
	}
}

func (h *Handler) GetTimesheets(w http.ResponseWriter, r *http.Request) {
	myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)

	var (
		timesheets []*domain.Timesheet
		err        error
	)

	switch myProfile.Role {
	case domain.RoleAgence:
		status := domain.TimesheetStatus(r.URL.Query().Get("status"))
		switch status {
		case "", domain.TimesheetStatusPending, domain.TimesheetStatusApproved, domain.TimesheetStatusRejected:
		default:
			h.errorResponse(w, r, "filtre de statut invalide")
			return
		}
		timesheets, err = h.repository.GetTimesheetsByAgency(myProfile.ID, status)
	case domain.RoleInterimaire:
		timesheets, err = h.repository.GetTimesheetsBySubmitter(myProfile.ID)
	default:
		h.errorResponse(w, r, "droits insuffisants")
		return
	}

	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "relevés récupérés", timesheets)
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)
	h.successResponse(w, r, "relevé récupéré", ts)
}

func (h *Handler) GetAgencyStats(w http.ResponseWriter, r *http.Request) {
	myProfile := r.Context().Value(MyProfileCtx).(*domain.Profile)

	stats, err := h.repository.GetAgencyStats(myProfile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "statistiques récupérées", stats)
}
