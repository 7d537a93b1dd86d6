package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/pluri-rh/timesheet-manager/backend/internal/workweek"
)

// ReleveData is the full timesheet payload carried by the submission
// webhook, field names kept wire-compatible with the n8n workflows.
type ReleveData struct {
	Employee      Employee           `json:"employee"`
	Company       Company            `json:"company"`
	WeekStart     string             `json:"weekStart"`
	Hours         workweek.WeekHours `json:"hours"`
	Comments      string             `json:"comments"`
	MissionStatus MissionStatus      `json:"missionStatus"`
	TotalHours    string             `json:"totalHours"`
}

type SubmissionWebhookPayload struct {
	TimesheetID uuid.UUID  `json:"timesheetId"`
	AgencyID    *uuid.UUID `json:"agencyId"`
	AgencyName  string     `json:"agencyName,omitempty"`
	SubmittedBy string     `json:"submittedBy"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ReleveData  ReleveData `json:"releve_data"`
	ClientEmail string     `json:"client_email"`
}

type ValidationWebhookPayload struct {
	TimesheetID  uuid.UUID `json:"timesheet_id"`
	Status       string    `json:"status"`
	Comment      *string   `json:"comment"`
	ValidatedAt  time.Time `json:"validated_at"`
	EmployeeName string    `json:"employee_name"`
	CompanyName  string    `json:"company_name"`
}

type ConsultationWebhookPayload struct {
	Token       string    `json:"token"`
	TimesheetID uuid.UUID `json:"timesheet_id"`
	ConsultedAt time.Time `json:"consulted_at"`
}
