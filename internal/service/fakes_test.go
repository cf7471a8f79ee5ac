package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/timeclock-service/internal/domain"
	"github.com/spec-kit/timeclock-service/internal/events"
	"github.com/spec-kit/timeclock-service/internal/repository"
)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
}

// memUserRepo is an in-memory UserRepository honoring the username unique
// constraint the way Postgres would.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return uniqueViolation()
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Username == user.Username {
			return uniqueViolation()
		}
	}
	user.UpdatedAt = time.Now().UTC()
	clone := *user
	*stored = clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if filter.IsAdmin != nil && user.IsAdmin != *filter.IsAdmin {
			continue
		}
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func listAllFilter() repository.UserFilter {
	return repository.UserFilter{}
}

// memClockRepo is an in-memory ClockEventRepository returning events newest
// first, like the SQL implementation.
type memClockRepo struct {
	mu        sync.Mutex
	seq       int
	clockRows []domain.ClockEvent
	users     *memUserRepo
}

func newMemClockRepo(users *memUserRepo) *memClockRepo {
	return &memClockRepo{users: users}
}

func (r *memClockRepo) Create(_ context.Context, event *domain.ClockEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uuid.NewString()
	r.seq++
	clone := *event
	r.clockRows = append(r.clockRows, clone)
	return nil
}

func (r *memClockRepo) ListByUser(_ context.Context, userID string) ([]domain.ClockEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ClockEvent
	for i := len(r.clockRows) - 1; i >= 0; i-- {
		if r.clockRows[i].UserID == userID {
			result = append(result, r.clockRows[i])
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *memClockRepo) ListAll(_ context.Context) ([]domain.ClockEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.ClockEvent, 0, len(r.clockRows))
	for i := len(r.clockRows) - 1; i >= 0; i-- {
		event := r.clockRows[i]
		if r.users != nil {
			if user, err := r.users.GetByID(context.Background(), event.UserID); err == nil {
				event.Username = user.Username
			}
		}
		result = append(result, event)
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(rows []domain.ClockEvent) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RecordedAt.After(rows[j].RecordedAt)
	})
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
