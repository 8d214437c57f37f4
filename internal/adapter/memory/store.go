// Package memory is an in-process implementation of the domain stores. A transaction works on
// a private copy of the data and publishes it on commit, so a failed transaction leaves no trace.
package memory

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
)

type state struct {
	users         map[uuid.UUID]domain.User
	applications  map[uuid.UUID]domain.JobApplication
	history       []domain.StatusHistoryEntry
	nextHistoryID int64
}

func (s *state) clone() *state {
	return &state{
		users:         maps.Clone(s.users),
		applications:  maps.Clone(s.applications),
		history:       slices.Clone(s.history),
		nextHistoryID: s.nextHistoryID,
	}
}

// Store serializes transactions with a single mutex.
type Store struct {
	mu    sync.Mutex
	state *state
}

var _ domain.Transactor = (*Store)(nil)

func NewStore() *Store {
	return &Store{state: &state{
		users:        make(map[uuid.UUID]domain.User),
		applications: make(map[uuid.UUID]domain.JobApplication),
	}}
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, txView{st: working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

// Users returns a repository that runs each call in its own transaction.
func (s *Store) Users() domain.UserRepository {
	return autoCommitUsers{store: s}
}

type txView struct {
	st *state
}

func (v txView) Applications() domain.ApplicationStore { return applicationStore(v) }
func (v txView) History() domain.HistoryLedger         { return historyLedger(v) }
func (v txView) Users() domain.UserRepository          { return userRepo(v) }

// --- applications ---

type applicationStore txView

func (a applicationStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.JobApplication, error) {
	apps := make([]domain.JobApplication, 0)
	for _, app := range a.st.applications {
		if app.OwnerID == ownerID {
			apps = append(apps, app)
		}
	}
	slices.SortFunc(apps, func(x, y domain.JobApplication) int {
		if c := y.UpdatedAt.Compare(x.UpdatedAt); c != 0 {
			return c
		}
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(x.ID[:], y.ID[:])
	})
	return apps, nil
}

func (a applicationStore) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*domain.JobApplication, error) {
	app, ok := a.st.applications[id]
	if !ok || app.OwnerID != ownerID {
		return nil, domain.ErrApplicationNotFound
	}
	return &app, nil
}

func (a applicationStore) FindByID(_ context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	app, ok := a.st.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &app, nil
}

func (a applicationStore) Insert(_ context.Context, app *domain.JobApplication) error {
	if _, ok := a.st.users[app.OwnerID]; !ok {
		return domain.ErrUserNotFound
	}
	a.st.applications[app.ID] = *app
	return nil
}

func (a applicationStore) Update(_ context.Context, app *domain.JobApplication) error {
	current, ok := a.st.applications[app.ID]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	current.Status = app.Status
	current.Notes = app.Notes
	current.UpdatedAt = app.UpdatedAt
	a.st.applications[app.ID] = current
	return nil
}

// Delete removes the record and, like the database foreign key, any history still attached.
func (a applicationStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := a.st.applications[id]; !ok {
		return domain.ErrApplicationNotFound
	}
	delete(a.st.applications, id)
	a.st.history = slices.DeleteFunc(a.st.history, func(e domain.StatusHistoryEntry) bool {
		return e.ApplicationID == id
	})
	return nil
}

func (a applicationStore) CountByStatus(_ context.Context, ownerID uuid.UUID) (map[domain.Status]int, error) {
	counts := make(map[domain.Status]int)
	for _, app := range a.st.applications {
		if app.OwnerID == ownerID {
			counts[app.Status]++
		}
	}
	return counts, nil
}

// --- history ---

type historyLedger txView

func (h historyLedger) Append(_ context.Context, applicationID uuid.UUID, status domain.Status, changedAt time.Time) (*domain.StatusHistoryEntry, error) {
	if _, ok := h.st.applications[applicationID]; !ok {
		return nil, domain.ErrApplicationNotFound
	}
	for _, e := range h.st.history {
		if e.ApplicationID == applicationID && e.ChangedAt.After(changedAt) {
			changedAt = e.ChangedAt
		}
	}

	h.st.nextHistoryID++
	entry := domain.StatusHistoryEntry{
		ID:            h.st.nextHistoryID,
		ApplicationID: applicationID,
		Status:        status,
		ChangedAt:     changedAt,
	}
	h.st.history = append(h.st.history, entry)
	return &entry, nil
}

func (h historyLedger) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	entries := make([]domain.StatusHistoryEntry, 0)
	for _, e := range h.st.history {
		if e.ApplicationID == applicationID {
			entries = append(entries, e)
		}
	}
	slices.SortStableFunc(entries, func(x, y domain.StatusHistoryEntry) int {
		if c := x.ChangedAt.Compare(y.ChangedAt); c != 0 {
			return c
		}
		return int(x.ID - y.ID)
	})
	return entries, nil
}

func (h historyLedger) DeleteAllForApplication(_ context.Context, applicationID uuid.UUID) (int64, error) {
	before := len(h.st.history)
	h.st.history = slices.DeleteFunc(h.st.history, func(e domain.StatusHistoryEntry) bool {
		return e.ApplicationID == applicationID
	})
	return int64(before - len(h.st.history)), nil
}

// --- users ---

type userRepo txView

func (u userRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range u.st.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}
	u.st.users[user.ID] = *user
	return nil
}

func (u userRepo) GetByID(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	user, ok := u.st.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (u userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range u.st.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type autoCommitUsers struct {
	store *Store
}

func (a autoCommitUsers) Create(ctx context.Context, user *domain.User) error {
	return a.store.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Users().Create(ctx, user)
	})
}

func (a autoCommitUsers) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := a.store.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		user, err = tx.Users().GetByID(ctx, userID)
		return err
	})
	return user, err
}

func (a autoCommitUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := a.store.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		user, err = tx.Users().GetByEmail(ctx, email)
		return err
	})
	return user, err
}
