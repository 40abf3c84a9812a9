// Package memory provides the in-process activity registry.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/repository"
)

// Registry implements activity.Repository over an ordered map.
// A single RWMutex serializes participant mutations across all activities.
type Registry struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*activity.Activity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		activities: make(map[string]*activity.Activity),
	}
}

// Replace swaps the registry contents for a copy of activities.
func (r *Registry) Replace(_ context.Context, activities []activity.Activity) error {
	order := make([]string, 0, len(activities))
	byName := make(map[string]*activity.Activity, len(activities))
	for _, a := range activities {
		c := a.Clone()
		if _, exists := byName[c.Name]; !exists {
			order = append(order, c.Name)
		}
		byName[c.Name] = &c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = order
	r.activities = byName
	return nil
}

// List returns a snapshot of every activity in seed order.
func (r *Registry) List(_ context.Context) (activity.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(activity.Catalog, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.activities[name].Clone())
	}
	return out, nil
}

// Get returns a copy of the named activity.
func (r *Registry) Get(_ context.Context, name string) (*activity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	act, ok := r.activities[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := act.Clone()
	return &c, nil
}

// AddParticipant appends email unless it is already present.
func (r *Registry) AddParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[name]
	if !ok {
		return repository.ErrNotFound
	}
	if act.HasParticipant(email) {
		return repository.ErrConflict
	}
	act.Participants = append(act.Participants, email)
	return nil
}

// RemoveParticipant deletes the first matching email.
func (r *Registry) RemoveParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[name]
	if !ok {
		return repository.ErrNotFound
	}
	idx := slices.Index(act.Participants, email)
	if idx < 0 {
		return repository.ErrParticipantNotFound
	}
	act.Participants = slices.Delete(act.Participants, idx, idx+1)
	return nil
}
