package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/notify"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/pkg/kvstore"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

type fixture struct {
	store    kvstore.Store
	repos    *repository.Repositories
	recorder *notify.Recorder
	session  *SessionManager
}

func newFixture(t *testing.T, variant string) *fixture {
	return newFixtureWithStore(t, variant, kvstore.NewMemory())
}

func newFixtureWithStore(t *testing.T, variant string, store kvstore.Store) *fixture {
	t.Helper()

	repos := repository.New(store, variant, testClock, logger.NewNop())
	recorder := notify.NewRecorder(0)

	seq := 0
	session, err := NewSessionManager(
		repos.Session,
		repository.NewDirectory(variant, testNow),
		repos.Referrals,
		recorder,
		logger.NewNop(),
		&SessionConfig{
			Variant:      variant,
			DemoPassword: "password",
			BcryptCost:   bcrypt.MinCost,
			Clock:        testClock,
			NewID: func() string {
				seq++
				return "u-" + string(rune('0'+seq))
			},
			NewCode: func() string { return "NEW001" },
		},
	)
	require.NoError(t, err)
	session.Load(context.Background())

	return &fixture{store: store, repos: repos, recorder: recorder, session: session}
}

func (f *fixture) login(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.session.Login(context.Background(), email, "password")
	require.NoError(t, err)
	return u
}
