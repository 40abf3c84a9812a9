package integration_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/memory"
	"github.com/mergington/activities/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	name        string
	activitySvc *activity.Service
}

func openSQLite(t *testing.T, dsn string) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestEnvs(t *testing.T) []testEnv {
	t.Helper()
	ctx := context.Background()

	memorySvc := activity.NewService(memory.NewRegistry(), nil)
	sqliteSvc := activity.NewService(sqlite.NewActivityRepository(openSQLite(t, ":memory:")), nil)

	envs := []testEnv{
		{name: "memory", activitySvc: memorySvc},
		{name: "sqlite", activitySvc: sqliteSvc},
	}
	for _, env := range envs {
		require.NoError(t, env.activitySvc.Seed(ctx, activity.DefaultCatalog()))
	}
	return envs
}

func TestIntegration_RegistrationLifecycle(t *testing.T) {
	ctx := context.Background()
	for _, env := range newTestEnvs(t) {
		t.Run(env.name, func(t *testing.T) {
			svc := env.activitySvc

			msg, err := svc.SignUp(ctx, "Drama Club", "new@mergington.edu")
			require.NoError(t, err)
			require.Equal(t, "Signed up new@mergington.edu for Drama Club", msg)

			_, err = svc.SignUp(ctx, "Drama Club", "new@mergington.edu")
			require.ErrorIs(t, err, activity.ErrAlreadyRegistered)

			act, err := svc.Get(ctx, "Drama Club")
			require.NoError(t, err)
			require.Equal(t, []string{"lucas@mergington.edu", "new@mergington.edu"}, act.Participants)

			msg, err = svc.Unregister(ctx, "Drama Club", "lucas@mergington.edu")
			require.NoError(t, err)
			require.Equal(t, "Unregistered lucas@mergington.edu from Drama Club", msg)

			_, err = svc.Unregister(ctx, "Drama Club", "lucas@mergington.edu")
			require.ErrorIs(t, err, activity.ErrNotRegistered)

			_, err = svc.SignUp(ctx, "drama club", "new@mergington.edu")
			require.ErrorIs(t, err, activity.ErrActivityNotFound)
			_, err = svc.Unregister(ctx, "Drama Club ", "new@mergington.edu")
			require.ErrorIs(t, err, activity.ErrActivityNotFound)
		})
	}
}

func TestIntegration_FailedOperationsLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	for _, env := range newTestEnvs(t) {
		t.Run(env.name, func(t *testing.T) {
			svc := env.activitySvc
			before, err := svc.List(ctx)
			require.NoError(t, err)

			_, err = svc.SignUp(ctx, "Basketball", "alex@mergington.edu")
			require.Error(t, err)
			_, err = svc.Unregister(ctx, "Basketball", "ghost@mergington.edu")
			require.Error(t, err)
			_, err = svc.SignUp(ctx, "Nonexistent Club", "x@mergington.edu")
			require.Error(t, err)

			after, err := svc.List(ctx)
			require.NoError(t, err)
			require.Equal(t, before, after)
		})
	}
}

func TestIntegration_BackendsAgree(t *testing.T) {
	ctx := context.Background()
	envs := newTestEnvs(t)

	ops := []struct {
		signup bool
		name   string
		email  string
	}{
		{true, "Chess Club", "a@mergington.edu"},
		{true, "Chess Club", "b@mergington.edu"},
		{false, "Chess Club", "michael@mergington.edu"},
		{true, "Chess Club", "michael@mergington.edu"},
		{false, "Art Studio", "mia@mergington.edu"},
		{true, "Math Olympiad", "a@mergington.edu"},
	}

	for _, env := range envs {
		for _, op := range ops {
			var err error
			if op.signup {
				_, err = env.activitySvc.SignUp(ctx, op.name, op.email)
			} else {
				_, err = env.activitySvc.Unregister(ctx, op.name, op.email)
			}
			require.NoError(t, err, "%s %v", env.name, op)
		}
	}

	memoryCatalog, err := envs[0].activitySvc.List(ctx)
	require.NoError(t, err)
	sqliteCatalog, err := envs[1].activitySvc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, memoryCatalog, sqliteCatalog)

	chess, err := envs[1].activitySvc.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"daniel@mergington.edu", "a@mergington.edu", "b@mergington.edu", "michael@mergington.edu"}, chess.Participants)
}

func TestIntegration_ConcurrentSignUps(t *testing.T) {
	ctx := context.Background()
	for _, env := range newTestEnvs(t) {
		t.Run(env.name, func(t *testing.T) {
			const workers = 50
			var wg sync.WaitGroup
			errs := make(chan error, workers)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := env.activitySvc.SignUp(ctx, "Programming Class", fmt.Sprintf("student%d@mergington.edu", i))
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}

			act, err := env.activitySvc.Get(ctx, "Programming Class")
			require.NoError(t, err)
			require.Len(t, act.Participants, workers+2)
		})
	}
}

func TestIntegration_SQLiteFileIsReseededOnStart(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "activities.db")

	first := openSQLite(t, dsn)
	svc := activity.NewService(sqlite.NewActivityRepository(first), nil)
	require.NoError(t, svc.Seed(ctx, activity.DefaultCatalog()))
	_, err := svc.SignUp(ctx, "Tennis Club", "before-restart@mergington.edu")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openSQLite(t, dsn)
	restarted := activity.NewService(sqlite.NewActivityRepository(second), nil)
	require.NoError(t, restarted.Seed(ctx, activity.DefaultCatalog()))

	tennis, err := restarted.Get(ctx, "Tennis Club")
	require.NoError(t, err)
	require.Equal(t, []string{"sarah@mergington.edu"}, tennis.Participants)
}

func TestIntegration_CustomSeed(t *testing.T) {
	ctx := context.Background()
	seed, err := activity.ParseSeed([]byte(`
activities:
  - name: Robotics
    description: Build and program robots
    schedule: Mondays, 4:00 PM - 6:00 PM
    max_participants: 2
    participants: [kai@mergington.edu]
`))
	require.NoError(t, err)

	for _, env := range newTestEnvs(t) {
		t.Run(env.name, func(t *testing.T) {
			require.NoError(t, env.activitySvc.Seed(ctx, seed))

			catalog, err := env.activitySvc.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"Robotics"}, catalog.Names())

			_, err = env.activitySvc.SignUp(ctx, "Chess Club", "x@mergington.edu")
			require.ErrorIs(t, err, activity.ErrActivityNotFound)
		})
	}
}
