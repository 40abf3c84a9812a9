package activity

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCatalog returns the built-in set of activities loaded at startup.
func DefaultCatalog() []Activity {
	return []Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball",
			Description:     "Join the school basketball team and compete in local leagues",
			Schedule:        "Wednesdays and Saturdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Develop tennis skills and play friendly matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"sarah@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing, and mixed media",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"mia@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and stage the school plays",
			Schedule:        "Thursdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"lucas@mergington.edu"},
		},
		{
			Name:            "Math Olympiad",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Wednesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"ava@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Build public speaking skills and argue current topics",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"noah@mergington.edu"},
		},
	}
}

type seedFile struct {
	Activities []Activity `yaml:"activities"`
}

// LoadSeedFile reads a YAML catalog of the form {activities: [...]}.
func LoadSeedFile(path string) ([]Activity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates a YAML catalog.
func ParseSeed(data []byte) ([]Activity, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := ValidateSeed(f.Activities); err != nil {
		return nil, err
	}
	return f.Activities, nil
}

// ValidateSeed checks names are present and unique, capacities are
// positive and no activity lists the same email twice.
func ValidateSeed(activities []Activity) error {
	names := make(map[string]struct{}, len(activities))
	for i, a := range activities {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: activity %d has no name", ErrInvalidSeed, i)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("%w: duplicate activity %q", ErrInvalidSeed, a.Name)
		}
		names[a.Name] = struct{}{}

		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q max_participants must be positive", ErrInvalidSeed, a.Name)
		}

		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: %q lists %s twice", ErrInvalidSeed, a.Name, email)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
