package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pluri-rh/timesheet-manager/backend/internal/workweek"
)

func draftFixture() TimesheetDraft {
	return TimesheetDraft{
		Employee: Employee{FirstName: "Jean", LastName: "Martin", PluriRH: "RH042"},
		Company: Company{
			Name:           "Entreprise ABC",
			Email:          "rh@entreprise-abc.fr",
			ContractNumber: "CT-2025-017",
			Location:       "Lyon",
		},
		WeekStart: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Hours: workweek.WeekHours{
			Monday:  workweek.DayHours{DayStart: "08:00", DayEnd: "16:00", Pause: 0.5},
			Tuesday: workweek.DayHours{DayStart: "08:00", DayEnd: "12:00"},
		},
		MissionStatus: MissionEnCours,
	}
}

func TestBuildTimesheet(t *testing.T) {
	submitter := uuid.New()
	agencyID := uuid.New()

	ts, err := BuildTimesheet(draftFixture(), submitter, &agencyID)
	if err != nil {
		t.Fatalf("BuildTimesheet: %v", err)
	}

	if ts.Status != TimesheetStatusPending {
		t.Fatalf("status = %q, want pending", ts.Status)
	}
	if ts.TotalHours != 11.5 {
		t.Fatalf("total = %v, want 11.5", ts.TotalHours)
	}
	if ts.WeekNumber != 11 || ts.Year != 2025 {
		t.Fatalf("got week %d of %d, want week 11 of 2025", ts.WeekNumber, ts.Year)
	}
	if ts.SubmittedBy != submitter {
		t.Fatalf("submittedBy = %v, want %v", ts.SubmittedBy, submitter)
	}
	if ts.AgencyID == nil || *ts.AgencyID != agencyID {
		t.Fatalf("agencyID = %v, want %v", ts.AgencyID, agencyID)
	}
	if ts.ClientEmail != "rh@entreprise-abc.fr" {
		t.Fatalf("clientEmail = %q", ts.ClientEmail)
	}
	if ts.ValidatorName != nil || ts.ValidatedAt != nil {
		t.Fatal("a fresh timesheet must carry no validator fields")
	}
}

func TestBuildTimesheetRejectsEmptyWeek(t *testing.T) {
	draft := draftFixture()
	draft.Hours = workweek.WeekHours{}

	if _, err := BuildTimesheet(draft, uuid.New(), nil); !errors.Is(err, ErrNoHoursReported) {
		t.Fatalf("err = %v, want ErrNoHoursReported", err)
	}
}

func TestBuildTimesheetRejectsClampedToZeroWeek(t *testing.T) {
	draft := draftFixture()
	draft.Hours = workweek.WeekHours{
		Monday: workweek.DayHours{DayStart: "22:00", DayEnd: "06:00"}, // clamps to 0
	}

	if _, err := BuildTimesheet(draft, uuid.New(), nil); !errors.Is(err, ErrNoHoursReported) {
		t.Fatalf("err = %v, want ErrNoHoursReported", err)
	}
}

func TestBuildTimesheetAllowsNilAgency(t *testing.T) {
	ts, err := BuildTimesheet(draftFixture(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("BuildTimesheet: %v", err)
	}
	if ts.AgencyID != nil {
		t.Fatalf("agencyID = %v, want nil", ts.AgencyID)
	}
}
