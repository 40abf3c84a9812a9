package activity

import "context"

// Repository holds the registry state. Implementations apply each
// participant mutation atomically and return copies from reads.
type Repository interface {
	Replace(ctx context.Context, activities []Activity) error
	List(ctx context.Context) (Catalog, error)
	Get(ctx context.Context, name string) (*Activity, error)
	AddParticipant(ctx context.Context, name, email string) error
	RemoveParticipant(ctx context.Context, name, email string) error
}
