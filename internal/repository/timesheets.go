package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
)

const timesheetColumns = `
	id, submitted_by, agency_id, client_email,
	employee_first_name, employee_last_name, employee_pluri_rh,
	company_name, company_email, company_contract_number, company_location,
	week_start, week_number, year, hours, comments, mission_status,
	total_hours, status, validator_name, validator_email, validation_comment,
	validated_at, created_at, updated_at
`

// prefixedTimesheetColumns qualifies the shared column list with a table
// alias for joined reads.
func prefixedTimesheetColumns(alias string) string {
	cols := strings.Split(timesheetColumns, ",")
	for i, col := range cols {
		cols[i] = alias + "." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}

func scanTimesheet(row interface{ Scan(...any) error }) (*domain.Timesheet, error) {
	ts := &domain.Timesheet{}
	var hoursRaw []byte

	dst := []any{
		&ts.ID, &ts.SubmittedBy, &ts.AgencyID, &ts.ClientEmail,
		&ts.Employee.FirstName, &ts.Employee.LastName, &ts.Employee.PluriRH,
		&ts.Company.Name, &ts.Company.Email, &ts.Company.ContractNumber, &ts.Company.Location,
		&ts.WeekStart, &ts.WeekNumber, &ts.Year, &hoursRaw, &ts.Comments, &ts.MissionStatus,
		&ts.TotalHours, &ts.Status, &ts.ValidatorName, &ts.ValidatorEmail, &ts.ValidationComment,
		&ts.ValidatedAt, &ts.CreatedAt, &ts.UpdatedAt,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(hoursRaw, &ts.Hours); err != nil {
		return nil, err
	}

	return ts, nil
}

func (r *Repository) CreateTimesheet(ts *domain.Timesheet) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	hoursRaw, err := json.Marshal(ts.Hours)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO timesheets (
			submitted_by, agency_id, client_email,
			employee_first_name, employee_last_name, employee_pluri_rh,
			company_name, company_email, company_contract_number, company_location,
			week_start, week_number, year, hours, comments, mission_status,
			total_hours, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`

	args := []any{
		ts.SubmittedBy, ts.AgencyID, ts.ClientEmail,
		ts.Employee.FirstName, ts.Employee.LastName, ts.Employee.PluriRH,
		ts.Company.Name, ts.Company.Email, ts.Company.ContractNumber, ts.Company.Location,
		ts.WeekStart, ts.WeekNumber, ts.Year, hoursRaw, ts.Comments, ts.MissionStatus,
		ts.TotalHours, ts.Status,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimesheetByID(id uuid.UUID) (*domain.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanTimesheet(r.dbpool.QueryRowContext(ctx, query, id))
}

// GetTimesheetsByAgency lists an agency's timesheets, newest first, with an
// optional status filter. An empty status returns all of them.
func (r *Repository) GetTimesheetsByAgency(agencyID uuid.UUID, status domain.TimesheetStatus) ([]*domain.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE agency_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, agencyID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTimesheets(rows)
}

func (r *Repository) GetTimesheetsBySubmitter(submittedBy uuid.UUID) ([]*domain.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE submitted_by = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, submittedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTimesheets(rows)
}

func collectTimesheets(rows *sql.Rows) ([]*domain.Timesheet, error) {
	timesheets := make([]*domain.Timesheet, 0)
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		timesheets = append(timesheets, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timesheets, nil
}

// AgencyStats backs the agency dashboard header cards.
type AgencyStats struct {
	TotalInterimaires  int     `json:"totalInterimaires"`
	TotalTimesheets    int     `json:"totalTimesheets"`
	PendingTimesheets  int     `json:"pendingTimesheets"`
	ApprovedTimesheets int     `json:"approvedTimesheets"`
	RejectedTimesheets int     `json:"rejectedTimesheets"`
	HoursThisMonth     float64 `json:"hoursThisMonth"`
}

func (r *Repository) GetAgencyStats(agencyID uuid.UUID) (*AgencyStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM profiles WHERE role = $2 AND agency_id = $1),
			count(*),
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'approved'),
			count(*) FILTER (WHERE status = 'rejected'),
			COALESCE(sum(total_hours) FILTER (WHERE created_at >= date_trunc('month', now())), 0)
		FROM timesheets
		WHERE agency_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	stats := &AgencyStats{}
	dst := []any{&stats.TotalInterimaires, &stats.TotalTimesheets, &stats.PendingTimesheets, &stats.ApprovedTimesheets, &stats.RejectedTimesheets, &stats.HoursThisMonth}
	if err := r.dbpool.QueryRowContext(ctx, query, agencyID, domain.RoleInterimaire).Scan(dst...); err != nil {
		return nil, err
	}

	return stats, nil
}
