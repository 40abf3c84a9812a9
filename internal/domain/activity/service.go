package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mergington/activities/internal/repository"
)

// Service implements the registry operations on top of a Repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Seed validates the catalog and replaces the registry contents with it.
func (s *Service) Seed(ctx context.Context, activities []Activity) error {
	if err := ValidateSeed(activities); err != nil {
		return err
	}
	if err := s.repo.Replace(ctx, activities); err != nil {
		return fmt.Errorf("seeding activities: %w", err)
	}
	s.logger.Info("activities seeded", "count", len(activities), "names", Catalog(activities).Names())
	return nil
}

// List returns every activity with its current participants.
func (s *Service) List(ctx context.Context) (Catalog, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return catalog, nil
}

// Get returns a single activity by exact name.
func (s *Service) Get(ctx context.Context, name string) (*Activity, error) {
	act, err := s.repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	return act, nil
}

// SignUp appends email to the activity's participants.
// max_participants is informational and not checked here.
func (s *Service) SignUp(ctx context.Context, name, email string) (string, error) {
	err := s.repo.AddParticipant(ctx, name, email)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return "", ErrActivityNotFound
	case errors.Is(err, repository.ErrConflict):
		return "", ErrAlreadyRegistered
	default:
		return "", fmt.Errorf("signing up: %w", err)
	}

	s.logger.Info("participant signed up", "activity", name, "email", email)
	return SignUpMessage(name, email), nil
}

// Unregister removes email from the activity's participants.
func (s *Service) Unregister(ctx context.Context, name, email string) (string, error) {
	err := s.repo.RemoveParticipant(ctx, name, email)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return "", ErrActivityNotFound
	case errors.Is(err, repository.ErrParticipantNotFound):
		return "", ErrNotRegistered
	default:
		return "", fmt.Errorf("unregistering: %w", err)
	}

	s.logger.Info("participant unregistered", "activity", name, "email", email)
	return UnregisterMessage(name, email), nil
}

// SignUpMessage is the confirmation returned after a successful signup.
func SignUpMessage(name, email string) string {
	return fmt.Sprintf("Signed up %s for %s", email, name)
}

// UnregisterMessage is the confirmation returned after a successful unregister.
func UnregisterMessage(name, email string) string {
	return fmt.Sprintf("Unregistered %s from %s", email, name)
}
