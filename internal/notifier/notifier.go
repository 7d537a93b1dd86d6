package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pluri-rh/timesheet-manager/backend/internal/config"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// mailPublisher is the slice of *amqp.Channel the notifier needs.
type mailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Notifier delivers the outbound side effects of the workflow: webhook
// POSTs to the automation engine and mail messages on the email queue.
// The Notify* methods are best-effort by contract: failures are logged and
// swallowed, never surfaced to the primary operation. PublishMail is the
// strict variant for flows where the mail is the whole point (OTP,
// invitation) and a failure must abort.
type Notifier struct {
	cfg         *config.Config
	mailChannel mailPublisher
	client      *http.Client
}

func New(cfg *config.Config, mailCh mailPublisher) *Notifier {
	return &Notifier{
		cfg:         cfg,
		mailChannel: mailCh,
		client: &http.Client{
			Timeout: time.Duration(cfg.Webhook.RequestTimeout) * time.Second,
		},
	}
}

// PublishMail serializes a mail message onto the email queue and reports
// any failure to the caller.
func (n *Notifier) PublishMail(msg domain.MailMessage) error {
	if n.mailChannel == nil {
		return fmt.Errorf("file d'attente email non configurée")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(n.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return n.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (n *Notifier) publishMailBestEffort(msg domain.MailMessage) {
	if err := n.PublishMail(msg); err != nil {
		slog.Error("publication email échouée (non bloquant)", "type", msg.Type, "to", msg.To, "error", err)
	}
}

// PostWebhook sends a JSON payload to a webhook URL. An empty URL means the
// hook is not configured and the call is a no-op. Non-2xx responses count
// as delivery failures.
func (n *Notifier) PostWebhook(url string, payload any) error {
	if url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook %s: statut %d", url, resp.StatusCode)
	}

	return nil
}

func (n *Notifier) postWebhookBestEffort(url string, payload any) {
	if err := n.PostWebhook(url, payload); err != nil {
		slog.Error("livraison webhook échouée (non bloquant)", "error", err)
	}
}

// NotifySubmission dispatches the submission webhook and the validation
// request email to the client contact. Both outcomes are independent of the
// persisted submission.
func (n *Notifier) NotifySubmission(ts *domain.Timesheet, submitter *domain.Profile, token *domain.ValidationToken) {
	agencyName := ""
	if submitter.AgencyName != nil {
		agencyName = *submitter.AgencyName
	}

	payload := domain.SubmissionWebhookPayload{
		TimesheetID: ts.ID,
		AgencyID:    ts.AgencyID,
		AgencyName:  agencyName,
		SubmittedBy: submitter.Email,
		SubmittedAt: ts.CreatedAt,
		ReleveData: domain.ReleveData{
			Employee:      ts.Employee,
			Company:       ts.Company,
			WeekStart:     ts.WeekStart.Format("2006-01-02"),
			Hours:         ts.Hours,
			Comments:      ts.Comments,
			MissionStatus: ts.MissionStatus,
			TotalHours:    fmt.Sprintf("%.2f", ts.TotalHours),
		},
		ClientEmail: ts.ClientEmail,
	}
	n.postWebhookBestEffort(n.cfg.Webhook.SubmissionURL, payload)

	n.publishMailBestEffort(domain.MailMessage{
		Type: "timesheet_submitted",
		To:   ts.ClientEmail,
		Data: domain.SubmissionMailData{
			EmployeeName: ts.Employee.FirstName + " " + ts.Employee.LastName,
			CompanyName:  ts.Company.Name,
			WeekLabel:    fmt.Sprintf("semaine %d, %d", ts.WeekNumber, ts.Year),
			TotalHours:   ts.TotalHours,
			ApproveURL:   fmt.Sprintf("%s/validation/%s?action=approve", n.cfg.App.BaseURL, token.Token),
			RejectURL:    fmt.Sprintf("%s/validation/%s?action=reject", n.cfg.App.BaseURL, token.Token),
			ExpiresAt:    token.ExpiresAt.Format("02/01/2006 15:04"),
		},
	})
}

// NotifyDecision dispatches the decision webhook and informs the agency of
// the outcome by email.
func (n *Notifier) NotifyDecision(ts *domain.Timesheet, agencyEmail string) {
	validatedAt := time.Now()
	if ts.ValidatedAt != nil {
		validatedAt = *ts.ValidatedAt
	}

	payload := domain.ValidationWebhookPayload{
		TimesheetID:  ts.ID,
		Status:       string(ts.Status),
		Comment:      ts.ValidationComment,
		ValidatedAt:  validatedAt,
		EmployeeName: ts.Employee.FirstName + " " + ts.Employee.LastName,
		CompanyName:  ts.Company.Name,
	}
	n.postWebhookBestEffort(n.cfg.Webhook.ValidationURL, payload)

	if agencyEmail == "" {
		return
	}

	comment := ""
	if ts.ValidationComment != nil {
		comment = *ts.ValidationComment
	}
	n.publishMailBestEffort(domain.MailMessage{
		Type: "timesheet_decision",
		To:   agencyEmail,
		Data: domain.DecisionMailData{
			EmployeeName: ts.Employee.FirstName + " " + ts.Employee.LastName,
			CompanyName:  ts.Company.Name,
			WeekLabel:    fmt.Sprintf("semaine %d, %d", ts.WeekNumber, ts.Year),
			Approved:     ts.Status == domain.TimesheetStatusApproved,
			Comment:      comment,
		},
	})
}

// NotifyConsultation reports a read of a still-valid validation link.
func (n *Notifier) NotifyConsultation(token *domain.ValidationToken) {
	payload := domain.ConsultationWebhookPayload{
		Token:       token.Token,
		TimesheetID: token.TimesheetID,
		ConsultedAt: time.Now(),
	}
	n.postWebhookBestEffort(n.cfg.Webhook.ConsultationURL, payload)
}
