package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pluri-rh/timesheet-manager/backend/internal/workweek"
)

type TimesheetStatus string

const (
	TimesheetStatusPending  TimesheetStatus = "pending"
	TimesheetStatusApproved TimesheetStatus = "approved"
	TimesheetStatusRejected TimesheetStatus = "rejected"
)

type MissionStatus string

const (
	MissionEnCours   MissionStatus = "En cours"
	MissionTerminee  MissionStatus = "Terminée"
	MissionSuspendue MissionStatus = "Suspendue"
)

// ErrNoHoursReported rejects a submission whose week total is exactly 0.
// A record with nothing to validate must never reach the client.
var ErrNoHoursReported = errors.New("aucune heure déclarée sur la semaine")

type Employee struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	PluriRH   string `json:"pluriRH"`
}

type Company struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ContractNumber string `json:"contractNumber"`
	Location       string `json:"location"`
}

// Timesheet is one worker's reported hours for one calendar week at one
// client company. TotalHours is always the deterministic sum recomputed
// from Hours at submission time; it is never edited independently. Status
// moves pending -> approved or pending -> rejected exactly once, and the
// validator fields are written by that single transition.
type Timesheet struct {
	ID                uuid.UUID          `json:"id"`
	SubmittedBy       uuid.UUID          `json:"submittedBy"`
	AgencyID          *uuid.UUID         `json:"agencyId"`
	ClientEmail       string             `json:"clientEmail"`
	Employee          Employee           `json:"employee"`
	Company           Company            `json:"company"`
	WeekStart         time.Time          `json:"weekStart"`
	WeekNumber        int                `json:"weekNumber"`
	Year              int                `json:"year"`
	Hours             workweek.WeekHours `json:"hours"`
	Comments          string             `json:"comments"`
	MissionStatus     MissionStatus      `json:"missionStatus"`
	TotalHours        float64            `json:"totalHours"`
	Status            TimesheetStatus    `json:"status"`
	ValidatorName     *string            `json:"validatorName,omitempty"`
	ValidatorEmail    *string            `json:"validatorEmail,omitempty"`
	ValidationComment *string            `json:"validationComment,omitempty"`
	ValidatedAt       *time.Time         `json:"validatedAt,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// TimesheetDraft is the submission payload before any identity or derived
// field has been attached.
type TimesheetDraft struct {
	Employee      Employee           `json:"employee"`
	Company       Company            `json:"company"`
	WeekStart     time.Time          `json:"weekStart"`
	Hours         workweek.WeekHours `json:"hours"`
	Comments      string             `json:"comments"`
	MissionStatus MissionStatus      `json:"missionStatus"`
}

// BuildTimesheet turns a draft into a pending timesheet: it computes the
// week total, resolves the ISO week period, and stamps the submitting
// principal. A week total of exactly 0 yields ErrNoHoursReported and no
// record. agencyID may be nil for an orphaned submitter profile; callers
// must log that as a data-integrity warning.
func BuildTimesheet(draft TimesheetDraft, submittedBy uuid.UUID, agencyID *uuid.UUID) (*Timesheet, error) {
	total := workweek.WeekTotal(draft.Hours)
	if total == 0 {
		return nil, ErrNoHoursReported
	}

	period := workweek.Period(draft.WeekStart)

	return &Timesheet{
		SubmittedBy:   submittedBy,
		AgencyID:      agencyID,
		ClientEmail:   draft.Company.Email,
		Employee:      draft.Employee,
		Company:       draft.Company,
		WeekStart:     period.Start,
		WeekNumber:    period.WeekNumber,
		Year:          period.Year,
		Hours:         draft.Hours,
		Comments:      draft.Comments,
		MissionStatus: draft.MissionStatus,
		TotalHours:    total,
		Status:        TimesheetStatusPending,
	}, nil
}
