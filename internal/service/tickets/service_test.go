package tickets

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/repository/mongodb"
)

type fakeStore struct {
	mu       sync.Mutex
	tickets  map[string]models.CaneTicket
	order    []string
	settings models.QuotaSettings
	replaced []models.CaneTicket
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tickets:  make(map[string]models.CaneTicket),
		settings: models.DefaultQuotaSettings(),
	}
}

func (f *fakeStore) ListTickets(ctx context.Context) ([]models.CaneTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CaneTicket, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.tickets[id])
	}
	return out, nil
}

func (f *fakeStore) GetTicket(ctx context.Context, id string) (models.CaneTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return models.CaneTicket{}, mongodb.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeStore) InsertTicket(ctx context.Context, t models.CaneTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickets[t.ID] = t
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeStore) UpdateTicket(ctx context.Context, t models.CaneTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[t.ID]; !ok {
		return mongodb.ErrTicketNotFound
	}
	f.tickets[t.ID] = t
	return nil
}

func (f *fakeStore) DeleteTicket(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[id]; !ok {
		return mongodb.ErrTicketNotFound
	}
	delete(f.tickets, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) ReplaceAllTickets(ctx context.Context, tickets []models.CaneTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = tickets
	f.tickets = make(map[string]models.CaneTicket, len(tickets))
	f.order = f.order[:0]
	for _, t := range tickets {
		f.tickets[t.ID] = t
		f.order = append(f.order, t.ID)
	}
	return nil
}

func (f *fakeStore) GetQuotaSettings(ctx context.Context) (models.QuotaSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, nil
}

type fakeMirror struct {
	mu      sync.Mutex
	appends []models.CaneTicket
	updates []models.CaneTicket
	deletes []string
	fetched []models.CaneTicket
	err     error
}

func (m *fakeMirror) AppendTicket(ctx context.Context, t models.CaneTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appends = append(m.appends, t)
	return m.err
}

func (m *fakeMirror) UpdateTicket(ctx context.Context, t models.CaneTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, t)
	return m.err
}

func (m *fakeMirror) DeleteTicket(ctx context.Context, ticketNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, ticketNumber)
	return m.err
}

func (m *fakeMirror) FetchTickets(ctx context.Context) ([]models.CaneTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetched, m.err
}

func (m *fakeMirror) appendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appends)
}

func (m *fakeMirror) deleteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deletes)
}

func fptr(v float64) *float64 { return &v }

func TestCreateCoercesMissingFields(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{NetWeightKg: -50})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.PlaceholderText, created.TicketNumber)
	assert.Equal(t, models.PlaceholderText, created.LicensePlate)
	assert.Equal(t, models.PlaceholderText, created.VendorName)
	assert.Equal(t, models.DefaultProductName, created.ProductName)
	assert.NotEmpty(t, created.Date)
	assert.NotEmpty(t, created.Time)
	assert.Equal(t, 0.0, created.NetWeightKg)
	assert.Nil(t, created.Moisture)
	assert.Nil(t, created.CanePrice)
	assert.Nil(t, created.TotalValue)

	stored, err := store.GetTicket(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestCreateFreezesGoalSnapshot(t *testing.T) {
	store := newFakeStore()
	store.settings = models.QuotaSettings{
		TargetTons: 1200,
		History:    []models.GoalHistory{{Round: 1}},
	}
	svc := NewService(store, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{TicketNumber: "WB-001"})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, created.GoalTarget)
	assert.Equal(t, 2, created.GoalRound)
}

func TestCreatePricesFromMoisture(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{
		NetWeightKg: 20000,
		Moisture:    fptr(22),
	})
	require.NoError(t, err)

	require.NotNil(t, created.CanePrice)
	require.NotNil(t, created.TotalValue)
	assert.Equal(t, 877.0, *created.CanePrice)
	assert.Equal(t, 17540.0, *created.TotalValue)
}

func TestCreatePushesToMirror(t *testing.T) {
	store := newFakeStore()
	mirror := &fakeMirror{}
	svc := NewService(store, mirror, nil, nil)

	_, err := svc.Create(context.Background(), CreateRequest{TicketNumber: "WB-001"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return mirror.appendCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestCreateSurvivesMirrorFailure(t *testing.T) {
	store := newFakeStore()
	mirror := &fakeMirror{err: errors.New("sheet unreachable")}
	svc := NewService(store, mirror, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{TicketNumber: "WB-001"})
	require.NoError(t, err)

	_, err = store.GetTicket(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestUpdateRepricesOnWeightChange(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{
		NetWeightKg: 20000,
		Moisture:    fptr(22),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateRequest{
		NetWeightKg: fptr(10000),
	})
	require.NoError(t, err)

	// Moisture kept, value recomputed from the new weight.
	require.NotNil(t, updated.Moisture)
	assert.Equal(t, 22.0, *updated.Moisture)
	assert.Equal(t, 877.0, *updated.CanePrice)
	assert.Equal(t, 8770.0, *updated.TotalValue)
}

func TestUpdateRepricesOnMoistureChange(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{
		NetWeightKg: 20000,
		Moisture:    fptr(22),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateRequest{
		Moisture: fptr(25),
	})
	require.NoError(t, err)

	assert.Equal(t, 840.0, *updated.CanePrice)
	assert.Equal(t, 16800.0, *updated.TotalValue)
}

func TestUpdateUnknownTicket(t *testing.T) {
	svc := NewService(newFakeStore(), nil, nil, nil)

	_, err := svc.Update(context.Background(), "missing", UpdateRequest{})
	assert.ErrorIs(t, err, mongodb.ErrTicketNotFound)
}

func TestDeleteIsLocalFirst(t *testing.T) {
	store := newFakeStore()
	mirror := &fakeMirror{err: errors.New("sheet unreachable")}
	svc := NewService(store, mirror, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{TicketNumber: "WB-009"})
	require.NoError(t, err)

	// Mirror failure must not block the local delete.
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = store.GetTicket(context.Background(), created.ID)
	assert.ErrorIs(t, err, mongodb.ErrTicketNotFound)

	assert.Eventually(t, func() bool { return mirror.deleteCount() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, "WB-009", mirror.deletes[0])
}

func TestRefreshWithoutMirror(t *testing.T) {
	svc := NewService(newFakeStore(), nil, nil, nil)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrMirrorDisabled)
}

func TestRefreshEmptySheetKeepsLocal(t *testing.T) {
	store := newFakeStore()
	mirror := &fakeMirror{}
	svc := NewService(store, mirror, nil, nil)

	created, err := svc.Create(context.Background(), CreateRequest{TicketNumber: "WB-001"})
	require.NoError(t, err)

	count, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = store.GetTicket(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestRefreshReplacesLocalSet(t *testing.T) {
	store := newFakeStore()
	mirror := &fakeMirror{fetched: []models.CaneTicket{
		{ID: "c1", TicketNumber: "WB-100", NetWeightKg: 12000},
		{ID: "c2", TicketNumber: "WB-101", NetWeightKg: 8000},
	}}
	svc := NewService(store, mirror, nil, nil)

	_, err := svc.Create(context.Background(), CreateRequest{TicketNumber: "stale"})
	require.NoError(t, err)

	count, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := store.ListTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c1", all[0].ID)
}

func TestRefreshFetchError(t *testing.T) {
	store := newFakeStore()
	mirror := &fakeMirror{err: errors.New("timeout")}
	svc := NewService(store, mirror, nil, nil)

	_, err := svc.Refresh(context.Background())
	assert.Error(t, err)
	assert.Nil(t, store.replaced)
}

func TestAnalyzeImageWithoutVision(t *testing.T) {
	svc := NewService(newFakeStore(), nil, nil, nil)

	_, err := svc.AnalyzeImage(context.Background(), "aGVsbG8=")
	assert.ErrorIs(t, err, ErrVisionDisabled)
}
