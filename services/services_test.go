package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"Roomio/pkg/apperror"
	"Roomio/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type emitted struct {
	Room    string
	Event   string
	Payload interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []emitted
}

func (r *recordingNotifier) Emit(room, event string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, emitted{room, event, payload})
}

func (r *recordingNotifier) byEvent(event string) []emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []emitted
	for _, e := range r.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	svc      *Services
	store    *memory.Store
	notifier *recordingNotifier
	now      time.Time
}

func newFixture(t *testing.T, opts ...func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.New(),
		notifier: &recordingNotifier{},
		now:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	o := Options{
		Notifier:   f.notifier,
		Now:        func() time.Time { return f.now },
		BcryptCost: bcrypt.MinCost,
	}
	for _, opt := range opts {
		opt(&o)
	}
	f.svc = New(f.store, o)
	return f
}

// signUp creates a user and returns its id.
func (f *fixture) signUp(t *testing.T, name, userType string) string {
	t.Helper()
	u, err := f.svc.Users.SignUp(context.Background(), SignUpInput{
		Email:    name + "@roomio.test",
		Password: "password123",
		FullName: name,
		UserType: userType,
	})
	require.NoError(t, err)
	return u.ID
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperror.CodeOf(err), "error: %v", err)
}
