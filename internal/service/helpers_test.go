package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/service-desk/internal/domain"
	"github.com/spec-kit/service-desk/internal/events"
)

// In-memory repository fakes. Mutate copies the row before invoking the
// callback so a failed validation leaves the stored row untouched, mirroring
// the transactional rollback of the real repository.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) add(user domain.User) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = &user
	return &user
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*domain.Request
	emails   map[int64]string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[int64]*domain.Request),
		emails:   make(map[int64]string),
	}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *domain.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	request.ID = f.nextID
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) ListByCustomer(_ context.Context, customerID int64) ([]domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Request
	for _, request := range f.sorted() {
		if request.CustomerID == customerID {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) ListBoard(_ context.Context, onlyValid bool) ([]domain.BoardRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.BoardRow
	for _, request := range f.sorted() {
		if onlyValid && !request.IsValid {
			continue
		}
		result = append(result, domain.BoardRow{
			Request:       *request,
			CustomerEmail: f.emails[request.CustomerID],
		})
	}
	return result, nil
}

func (f *fakeRequestRepo) ListAll(_ context.Context) ([]domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Request
	for _, request := range f.sorted() {
		result = append(result, *request)
	}
	return result, nil
}

func (f *fakeRequestRepo) ListDetails(_ context.Context) ([]domain.RequestDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.RequestDetail
	for _, request := range f.sorted() {
		result = append(result, domain.RequestDetail{
			Request:       *request,
			CustomerEmail: f.emails[request.CustomerID],
		})
	}
	return result, nil
}

func (f *fakeRequestRepo) Mutate(_ context.Context, id int64, fn func(*domain.Request) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	copied := *request
	if err := fn(&copied); err != nil {
		return err
	}
	f.requests[id] = &copied
	return nil
}

func (f *fakeRequestRepo) MutateOwned(_ context.Context, id, customerID int64, fn func(*domain.Request) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.CustomerID != customerID {
		return pgx.ErrNoRows
	}
	copied := *request
	if err := fn(&copied); err != nil {
		return err
	}
	f.requests[id] = &copied
	return nil
}

func (f *fakeRequestRepo) sorted() []*domain.Request {
	ids := make([]int64, 0, len(f.requests))
	for id := range f.requests {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]*domain.Request, 0, len(ids))
	for _, id := range ids {
		result = append(result, f.requests[id])
	}
	return result
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.RequestHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (f *fakeHistoryRepo) Create(_ context.Context, history *domain.RequestHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	history.ID = f.nextID
	f.entries = append(f.entries, *history)
	return nil
}

func (f *fakeHistoryRepo) ListByRequest(_ context.Context, requestID int64) ([]domain.RequestHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.RequestHistory
	for _, entry := range f.entries {
		if entry.RequestID == requestID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
