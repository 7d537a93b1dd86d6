package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
)

func (r *Repository) CreateValidationToken(token *domain.ValidationToken) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO validation_tokens (token, timesheet_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, used, created_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, token.Token, token.TimesheetID, token.ExpiresAt).Scan(&token.ID, &token.Used, &token.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetValidationTokenWithTimesheet resolves a token string and its bound
// timesheet in a single joined read. sql.ErrNoRows means the token string
// resolves to nothing (the unknown state); any other error is transient.
func (r *Repository) GetValidationTokenWithTimesheet(tokenString string) (*domain.ValidationToken, *domain.Timesheet, error) {
	query := `
		SELECT
			vt.id, vt.token, vt.timesheet_id, vt.expires_at, vt.used, vt.used_at, vt.created_at,
			` + prefixedTimesheetColumns("t") + `
		FROM validation_tokens vt
		JOIN timesheets t ON t.id = vt.timesheet_id
		WHERE vt.token = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	token := &domain.ValidationToken{}
	ts := &domain.Timesheet{}
	var hoursRaw []byte

	dst := []any{
		&token.ID, &token.Token, &token.TimesheetID, &token.ExpiresAt, &token.Used, &token.UsedAt, &token.CreatedAt,
		&ts.ID, &ts.SubmittedBy, &ts.AgencyID, &ts.ClientEmail,
		&ts.Employee.FirstName, &ts.Employee.LastName, &ts.Employee.PluriRH,
		&ts.Company.Name, &ts.Company.Email, &ts.Company.ContractNumber, &ts.Company.Location,
		&ts.WeekStart, &ts.WeekNumber, &ts.Year, &hoursRaw, &ts.Comments, &ts.MissionStatus,
		&ts.TotalHours, &ts.Status, &ts.ValidatorName, &ts.ValidatorEmail, &ts.ValidationComment,
		&ts.ValidatedAt, &ts.CreatedAt, &ts.UpdatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, tokenString).Scan(dst...); err != nil {
		return nil, nil, err
	}

	if err := json.Unmarshal(hoursRaw, &ts.Hours); err != nil {
		return nil, nil, err
	}

	return token, ts, nil
}

// Decision is the outcome a validator commits against a token.
type Decision struct {
	Status         domain.TimesheetStatus
	Comment        *string
	ValidatorName  *string
	ValidatorEmail *string
}

// ConsumeTokenAndDecide flips the token to used and applies the decision to
// the bound timesheet in one transaction. The conditional token update is
// the linearization point for racing validators: the WHERE used = FALSE
// guard lets at most one caller through, and the loser gets
// domain.ErrTokenConflict. A token that lapsed between resolve and decision
// gets domain.ErrTokenExpired; an unresolvable token gets sql.ErrNoRows.
func (r *Repository) ConsumeTokenAndDecide(tokenString string, decision Decision) (*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE validation_tokens
		SET used = TRUE, used_at = now()
		WHERE token = $1 AND used = FALSE AND expires_at > now()
		RETURNING timesheet_id
	`

	var timesheetID uuid.UUID
	if err := tx.QueryRowContext(ctx, query, tokenString).Scan(&timesheetID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, r.classifyConsumeFailure(ctx, tx, tokenString)
	}

	query = `
		UPDATE timesheets
		SET
			status = $1,
			validation_comment = $2,
			validator_name = $3,
			validator_email = $4,
			validated_at = now(),
			updated_at = now()
		WHERE id = $5 AND status = $6
		RETURNING ` + timesheetColumns + `
	`

	args := []any{decision.Status, decision.Comment, decision.ValidatorName, decision.ValidatorEmail, timesheetID, domain.TimesheetStatusPending}
	ts, err := scanTimesheet(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return ts, nil
}

// classifyConsumeFailure distinguishes why the guarded token update matched
// nothing: consumed by a racing decision, expired in the meantime, or a
// token string that never resolved.
func (r *Repository) classifyConsumeFailure(ctx context.Context, tx *sql.Tx, tokenString string) error {
	query := `
		SELECT used, expires_at FROM validation_tokens WHERE token = $1
	`

	var used bool
	var expiresAt time.Time
	if err := tx.QueryRowContext(ctx, query, tokenString).Scan(&used, &expiresAt); err != nil {
		return err
	}

	if used {
		return domain.ErrTokenConflict
	}

	return domain.ErrTokenExpired
}
