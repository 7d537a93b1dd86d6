package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
	"github.com/pluri-rh/timesheet-manager/backend/internal/repository"
	"github.com/pluri-rh/timesheet-manager/backend/internal/utils"
	"github.com/pluri-rh/timesheet-manager/backend/internal/workweek"
)

// SeedInterimaires inserts n random worker profiles under the given agency,
// all sharing the same development password.
func SeedInterimaires(r *repository.Repository, agency *domain.Profile, n int, password string) ([]*domain.Profile, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0, n)
	for i := 0; i < n; i++ {
		firstName := utils.GenerateRandomFirstName()
		lastName := utils.GenerateRandomLastName()
		agencyID := agency.ID

		profile := &domain.Profile{
			Email:        utils.GenerateEmailFromName(firstName, lastName, "exemple.fr"),
			PasswordHash: string(passwordHash),
			Role:         domain.RoleInterimaire,
			AgencyID:     &agencyID,
			AgencyName:   agency.AgencyName,
			FirstName:    firstName,
			LastName:     lastName,
		}

		if err := r.CreateProfile(profile); err != nil {
			return nil, err
		}
		slog.Info("intérimaire créé", "email", profile.Email)
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

var companyNames = []string{"Entreprise ABC", "Société XYZ", "Logistique Nord", "BTP Rhône", "AgroPlus"}
var locations = []string{"Paris", "Lyon", "Lille", "Nantes", "Marseille"}

// randomWeekHours fills a plausible Monday-to-Friday week, sometimes with a
// night shift, sometimes with an empty day.
func randomWeekHours(weekStart time.Time) workweek.WeekHours {
	days := [7]workweek.DayHours{}
	for i := range days {
		days[i].Date = weekStart.AddDate(0, 0, i).Format("2006-01-02")
		if i >= 5 || rand.Intn(10) == 0 {
			continue // weekend or a day off
		}
		days[i].DayStart = "08:00"
		days[i].DayEnd = fmt.Sprintf("%02d:00", 16+rand.Intn(3))
		days[i].Pause = 0.5
		if rand.Intn(5) == 0 {
			days[i].NightStart = "22:00"
			days[i].NightEnd = "02:00"
		}
	}

	return workweek.WeekHours{
		Monday:    days[0],
		Tuesday:   days[1],
		Wednesday: days[2],
		Thursday:  days[3],
		Friday:    days[4],
		Saturday:  days[5],
		Sunday:    days[6],
	}
}

func mondayOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// SeedTimesheets inserts n random submissions from the given workers, each
// with its validation token. Roughly a third get a decision applied through
// the real consumption path, and some tokens are created already expired to
// cover every token state.
func SeedTimesheets(r *repository.Repository, agency *domain.Profile, workers []*domain.Profile, n int) error {
	if len(workers) == 0 {
		return fmt.Errorf("aucun intérimaire à qui attribuer les relevés")
	}

	for i := 0; i < n; i++ {
		worker := workers[rand.Intn(len(workers))]
		weekStart := mondayOf(time.Now().AddDate(0, 0, -7*rand.Intn(8)))
		companyIdx := rand.Intn(len(companyNames))

		draft := domain.TimesheetDraft{
			Employee: domain.Employee{
				FirstName: worker.FirstName,
				LastName:  worker.LastName,
				PluriRH:   fmt.Sprintf("RH%03d", rand.Intn(1000)),
			},
			Company: domain.Company{
				Name:           companyNames[companyIdx],
				Email:          fmt.Sprintf("rh%d@client-exemple.fr", companyIdx),
				ContractNumber: fmt.Sprintf("CT-%d-%03d", weekStart.Year(), rand.Intn(1000)),
				Location:       locations[rand.Intn(len(locations))],
			},
			WeekStart:     weekStart,
			Hours:         randomWeekHours(weekStart),
			Comments:      "",
			MissionStatus: domain.MissionEnCours,
		}

		ts, err := domain.BuildTimesheet(draft, worker.ID, worker.AgencyID)
		if err != nil {
			// an all-empty random week, skip it
			continue
		}

		if err := r.CreateTimesheet(ts); err != nil {
			return err
		}

		expiresAt := time.Now().Add(7 * 24 * time.Hour)
		if rand.Intn(5) == 0 {
			expiresAt = time.Now().Add(-time.Hour) // already expired
		}
		token := &domain.ValidationToken{
			Token:       utils.GenerateValidationToken(),
			TimesheetID: ts.ID,
			ExpiresAt:   expiresAt,
		}
		if err := r.CreateValidationToken(token); err != nil {
			return err
		}

		// decide some of them through the real consumption path
		if rand.Intn(3) == 0 && expiresAt.After(time.Now()) {
			status := domain.TimesheetStatusApproved
			if rand.Intn(4) == 0 {
				status = domain.TimesheetStatusRejected
			}
			validatorName := "Responsable RH"
			if _, err := r.ConsumeTokenAndDecide(token.Token, repository.Decision{
				Status:        status,
				ValidatorName: &validatorName,
			}); err != nil {
				return err
			}
		}

		slog.Info("relevé créé", "timesheet", ts.ID, "semaine", ts.WeekNumber, "total", ts.TotalHours)
	}

	return nil
}
