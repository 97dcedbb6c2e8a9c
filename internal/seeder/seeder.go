package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"mergington/internal/activities/models"
)

// Target receives demo data when it is empty.
type Target interface {
	SeedIfEmpty(reg models.Registry) (bool, error)
}

// Seeder populates an empty activity registry with demo data
type Seeder struct {
	target Target
	logger *slog.Logger
}

func New(target Target, logger *slog.Logger) *Seeder {
	return &Seeder{
		target: target,
		logger: logger,
	}
}

// SeedAll installs DemoActivities unless the registry already has activities.
func (s *Seeder) SeedAll(ctx context.Context) error {
	demo := DemoActivities()

	seeded, err := s.target.SeedIfEmpty(demo)
	if err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}
	if !seeded {
		s.logger.DebugContext(ctx, "registry not empty, skipping demo data")
		return nil
	}

	s.logger.InfoContext(ctx, "demo data seeded successfully",
		"activities", len(demo),
		"participants", demo.ParticipantCount(),
	)
	return nil
}

// DemoActivities returns the school's default activity catalogue.
func DemoActivities() models.Registry {
	demo := []struct {
		name         string
		description  string
		schedule     string
		max          int
		participants []string
	}{
		{"Chess Club", "Learn strategies and compete in chess tournaments", "Fridays, 3:30 PM - 5:00 PM", 12,
			[]string{"michael@mergington.edu", "daniel@mergington.edu"}},
		{"Programming Class", "Learn programming fundamentals and build software projects", "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20,
			[]string{"emma@mergington.edu", "sophia@mergington.edu"}},
		{"Gym Class", "Physical education and sports activities", "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30,
			[]string{"john@mergington.edu", "olivia@mergington.edu"}},
		{"Soccer Team", "Join the school soccer team and compete in matches", "Tuesdays and Thursdays, 4:00 PM - 5:30 PM", 22,
			[]string{"liam@mergington.edu", "noah@mergington.edu"}},
		{"Basketball Team", "Practice and play basketball with the school team", "Wednesdays and Fridays, 3:30 PM - 5:00 PM", 15,
			[]string{"ava@mergington.edu", "mia@mergington.edu"}},
		{"Art Club", "Explore your creativity through painting and drawing", "Thursdays, 3:30 PM - 5:00 PM", 15,
			[]string{"amelia@mergington.edu", "harper@mergington.edu"}},
		{"Drama Club", "Act, direct, and produce plays and performances", "Mondays and Wednesdays, 4:00 PM - 5:30 PM", 20,
			[]string{"ella@mergington.edu", "scarlett@mergington.edu"}},
		{"Math Club", "Solve challenging problems and participate in math competitions", "Tuesdays, 3:30 PM - 4:30 PM", 10,
			[]string{"james@mergington.edu", "benjamin@mergington.edu"}},
		{"Debate Team", "Develop public speaking and argumentation skills", "Fridays, 4:00 PM - 5:30 PM", 12,
			[]string{"charlotte@mergington.edu", "henry@mergington.edu"}},
	}

	reg := make(models.Registry, len(demo))
	for _, a := range demo {
		reg[a.name] = models.Activity{
			Description:     a.description,
			Schedule:        a.schedule,
			MaxParticipants: &a.max,
			Participants:    append([]string{}, a.participants...),
		}
	}
	return reg
}
