// Package seed resets the store to a demo data set: one known user and a
// batch of random leads owned by that user.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	authentity "lead_backend/internal/feature/auth/domain/entity"
	authusecase "lead_backend/internal/feature/auth/usecase"
	"lead_backend/internal/feature/lead/domain/entity"
)

const (
	TestUserName     = "Test User"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "password123"
	DefaultLeadCount = 120
)

var (
	firstNames = []string{
		"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Jessica",
		"William", "Ashley", "James", "Amanda", "Christopher", "Jennifer", "Daniel",
		"Lisa", "Matthew", "Nancy", "Anthony", "Karen", "Mark", "Betty", "Donald",
		"Helen", "Steven", "Sandra", "Paul", "Donna", "Andrew", "Carol", "Joshua",
		"Ruth", "Kenneth", "Sharon", "Kevin", "Michelle", "Brian", "Laura", "George",
		"Timothy", "Kimberly", "Ronald", "Deborah", "Jason", "Dorothy",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
		"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
		"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
		"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill",
		"Flores", "Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell",
	}
	companies = []string{
		"TechCorp", "InnovateLabs", "Digital Solutions", "Future Systems", "CloudTech",
		"DataDriven Inc", "SmartWorks", "NextGen Technologies", "CyberSoft", "AI Dynamics",
		"Quantum Computing", "Blockchain Solutions", "Machine Learning Co", "Robotics Inc",
		"Virtual Reality Labs", "Augmented Systems", "IoT Innovations", "Big Data Corp",
		"Analytics Pro", "Insight Technologies", "Predictive Systems", "Automation Co",
		"Efficiency Labs", "Productivity Solutions", "Workflow Technologies", "Process Inc",
		"Optimization Corp", "Performance Systems", "Scalable Solutions", "Enterprise Tech",
	}
	// cities pairs each city with its state.
	cities = [][2]string{
		{"New York", "NY"}, {"Los Angeles", "CA"}, {"Chicago", "IL"}, {"Houston", "TX"},
		{"Phoenix", "AZ"}, {"Philadelphia", "PA"}, {"San Antonio", "TX"}, {"San Diego", "CA"},
		{"Dallas", "TX"}, {"San Jose", "CA"}, {"Austin", "TX"}, {"Jacksonville", "FL"},
		{"Fort Worth", "TX"}, {"Columbus", "OH"}, {"Charlotte", "NC"}, {"San Francisco", "CA"},
		{"Indianapolis", "IN"}, {"Seattle", "WA"}, {"Denver", "CO"}, {"Washington", "DC"},
		{"Boston", "MA"}, {"El Paso", "TX"}, {"Nashville", "TN"}, {"Detroit", "MI"},
		{"Oklahoma City", "OK"}, {"Portland", "OR"}, {"Las Vegas", "NV"}, {"Memphis", "TN"},
		{"Louisville", "KY"}, {"Baltimore", "MD"}, {"Milwaukee", "WI"}, {"Albuquerque", "NM"},
		{"Tucson", "AZ"}, {"Fresno", "CA"}, {"Sacramento", "CA"},
	}
)

// UserStore is the subset of the user repository the seeder needs.
type UserStore interface {
	DeleteAll(ctx context.Context) error
}

// LeadStore is the subset of the lead repository the seeder needs.
type LeadStore interface {
	DeleteAll(ctx context.Context) error
	CreateBatch(ctx context.Context, leads []entity.Lead) error
}

// Registrar creates the test account with a hashed password.
type Registrar interface {
	Register(ctx context.Context, name, email, password string) (*authusecase.AuthResult, error)
}

// Seeder wipes users and leads, then recreates the demo data.
type Seeder struct {
	Users     UserStore
	Leads     LeadStore
	Registrar Registrar
	Rand      *rand.Rand
	Now       func() time.Time
}

// Run performs the reset and returns the created test user.
func (s *Seeder) Run(ctx context.Context, leadCount int) (*authentity.User, error) {
	if err := s.Leads.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear leads: %w", err)
	}
	if err := s.Users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear users: %w", err)
	}
	slog.Info("cleared existing data")

	res, err := s.Registrar.Register(ctx, TestUserName, TestUserEmail, TestUserPassword)
	if err != nil {
		return nil, fmt.Errorf("create test user: %w", err)
	}
	slog.Info("created test user", "email", TestUserEmail)

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	leads := GenerateLeads(s.Rand, leadCount, res.User.ID, now().UTC())
	if err := s.Leads.CreateBatch(ctx, leads); err != nil {
		return nil, fmt.Errorf("create leads: %w", err)
	}
	slog.Info("created leads", "count", len(leads))
	return res.User, nil
}

// GenerateLeads builds n random leads owned by createdBy. Emails are unique
// by index. Roughly 70% of leads get a last activity within 30 days of now.
func GenerateLeads(rng *rand.Rand, n int, createdBy string, now time.Time) []entity.Lead {
	sources := entity.Sources()
	statuses := entity.Statuses()

	leads := make([]entity.Lead, 0, n)
	for i := 0; i < n; i++ {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)
		place := pick(rng, cities)
		status := pick(rng, statuses)

		l := entity.NewLead(createdBy)
		l.FirstName = first
		l.LastName = last
		l.Email = fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i)
		l.Phone = fmt.Sprintf("+1-%d-%d-%d", rng.IntN(900)+100, rng.IntN(900)+100, rng.IntN(9000)+1000)
		l.Company = pick(rng, companies)
		l.City = place[0]
		l.State = place[1]
		l.Source = pick(rng, sources)
		l.Status = status
		l.Score = rng.IntN(101)
		l.LeadValue = float64(rng.IntN(50000) + 1000)
		l.IsQualified = status == entity.StatusQualified || status == entity.StatusWon
		if rng.Float64() > 0.3 {
			at := now.Add(-time.Duration(rng.Int64N(int64(30 * 24 * time.Hour))))
			l.LastActivityAt = &at
		}
		// spread creation over the past 60 days so date filters have something to find
		l.CreatedAt = now.Add(-time.Duration(rng.Int64N(int64(60 * 24 * time.Hour))))
		l.UpdatedAt = l.CreatedAt
		leads = append(leads, *l)
	}
	return leads
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}
