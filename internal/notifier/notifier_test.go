package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pluri-rh/timesheet-manager/backend/internal/config"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/workweek"
)

type fakePublisher struct {
	published []amqp.Publishing
	err       error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseURL = "https://timesheets.exemple.fr"
	cfg.Webhook.RequestTimeout = 2
	cfg.RabbitMQ.PublishTimeout = 2
	return cfg
}

func timesheetFixture() *domain.Timesheet {
	agencyID := uuid.New()
	return &domain.Timesheet{
		ID:          uuid.New(),
		SubmittedBy: uuid.New(),
		AgencyID:    &agencyID,
		ClientEmail: "rh@entreprise-abc.fr",
		Employee:    domain.Employee{FirstName: "Jean", LastName: "Martin", PluriRH: "RH042"},
		Company:     domain.Company{Name: "Entreprise ABC", Email: "rh@entreprise-abc.fr"},
		WeekStart:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		WeekNumber:  11,
		Year:        2025,
		Hours: workweek.WeekHours{
			Monday: workweek.DayHours{DayStart: "08:00", DayEnd: "16:00", Pause: 0.5},
		},
		MissionStatus: domain.MissionEnCours,
		TotalHours:    7.5,
		Status:        domain.TimesheetStatusPending,
		CreatedAt:     time.Now(),
	}
}

func TestPostWebhookDelivers(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}))
	defer srv.Close()

	n := New(testConfig(), nil)
	if err := n.PostWebhook(srv.URL, map[string]string{"hello": "monde"}); err != nil {
		t.Fatalf("PostWebhook: %v", err)
	}
	if got["hello"] != "monde" {
		t.Fatalf("payload = %v", got)
	}
}

func TestPostWebhookEmptyURLIsNoop(t *testing.T) {
	n := New(testConfig(), nil)
	if err := n.PostWebhook("", map[string]string{}); err != nil {
		t.Fatalf("empty URL should be a no-op, got %v", err)
	}
}

func TestPostWebhookRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := New(testConfig(), nil)
	if err := n.PostWebhook(srv.URL, map[string]string{}); err == nil {
		t.Fatal("expected an error on a 502 response")
	}
}

func TestPublishMailWithoutQueue(t *testing.T) {
	n := New(testConfig(), nil)
	if err := n.PublishMail(domain.MailMessage{Type: "reset_password"}); err == nil {
		t.Fatal("expected an error when no mail channel is configured")
	}
}

func TestNotifySubmissionPublishesMailAndWebhook(t *testing.T) {
	webhookHits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookHits++
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Webhook.SubmissionURL = srv.URL

	pub := &fakePublisher{}
	n := New(cfg, pub)

	ts := timesheetFixture()
	agencyName := "PLURI'RH Lyon"
	submitter := &domain.Profile{
		ID:         ts.SubmittedBy,
		Email:      "interim@exemple.fr",
		Role:       domain.RoleInterimaire,
		AgencyName: &agencyName,
	}
	token := &domain.ValidationToken{
		Token:       "abcdef0123456789abcdef0123456789abcdef0123456789",
		TimesheetID: ts.ID,
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
	}

	n.NotifySubmission(ts, submitter, token)

	if webhookHits != 1 {
		t.Fatalf("webhook hits = %d, want 1", webhookHits)
	}
	if len(pub.published) != 1 {
		t.Fatalf("published mails = %d, want 1", len(pub.published))
	}

	var msg struct {
		Type string `json:"type"`
		To   string `json:"to"`
		Data domain.SubmissionMailData
	}
	if err := json.Unmarshal(pub.published[0].Body, &msg); err != nil {
		t.Fatalf("unmarshal mail: %v", err)
	}
	if msg.Type != "timesheet_submitted" || msg.To != ts.ClientEmail {
		t.Fatalf("mail envelope = %+v", msg)
	}
	wantApprove := "https://timesheets.exemple.fr/validation/" + token.Token + "?action=approve"
	if msg.Data.ApproveURL != wantApprove {
		t.Fatalf("approve URL = %q, want %q", msg.Data.ApproveURL, wantApprove)
	}
}

func TestNotifyDecisionSwallowsWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Webhook.ValidationURL = srv.URL

	pub := &fakePublisher{}
	n := New(cfg, pub)

	ts := timesheetFixture()
	ts.Status = domain.TimesheetStatusApproved

	// must not panic nor surface the webhook failure
	n.NotifyDecision(ts, "agence@exemple.fr")

	if len(pub.published) != 1 {
		t.Fatalf("published mails = %d, want 1", len(pub.published))
	}
}

func TestNotifyDecisionSkipsMailWithoutAgencyEmail(t *testing.T) {
	pub := &fakePublisher{}
	n := New(testConfig(), pub)

	n.NotifyDecision(timesheetFixture(), "")

	if len(pub.published) != 0 {
		t.Fatalf("published mails = %d, want 0", len(pub.published))
	}
}
