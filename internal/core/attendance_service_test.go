package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlour.service/internal/core/model"
)

// Mock implementations for testing

type mockDirectory struct {
	employees map[string]*model.Employee
}

func (m *mockDirectory) List(ctx context.Context) ([]model.Employee, error) { return nil, nil }
func (m *mockDirectory) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	return m.employees[id], nil
}
func (m *mockDirectory) Create(ctx context.Context, e *model.Employee) error { return nil }
func (m *mockDirectory) Update(ctx context.Context, e *model.Employee) (bool, error) {
	return false, nil
}
func (m *mockDirectory) Delete(ctx context.Context, id string) (bool, error) { return false, nil }

type mockEventStore struct {
	directory *mockDirectory
	events    []model.AttendanceEvent
	clock     time.Time
}

func (m *mockEventStore) Append(ctx context.Context, employeeID string, punchType model.PunchType) (*model.AttendanceEvent, error) {
	m.clock = m.clock.Add(time.Second)
	ev := model.AttendanceEvent{
		ID:         fmt.Sprintf("ev-%d", len(m.events)+1),
		EmployeeID: employeeID,
		Type:       punchType,
		Timestamp:  m.clock,
	}
	m.events = append(m.events, ev)
	return &ev, nil
}

func (m *mockEventStore) GetByID(ctx context.Context, id string) (*model.AttendanceEvent, error) {
	for i := range m.events {
		if m.events[i].ID == id {
			return &m.events[i], nil
		}
	}
	return nil, nil
}

func (m *mockEventStore) ListAll(ctx context.Context) ([]model.AttendanceEvent, error) {
	out := make([]model.AttendanceEvent, len(m.events))
	for i, ev := range m.events {
		out[len(m.events)-1-i] = ev
	}
	return out, nil
}

func (m *mockEventStore) FindLastByEmployee(ctx context.Context, employeeID string) (*model.AttendanceEvent, error) {
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].EmployeeID == employeeID {
			return &m.events[i], nil
		}
	}
	return nil, nil
}

func (m *mockEventStore) enrich(ev model.AttendanceEvent) (*model.EnrichedAttendanceEvent, bool) {
	emp := m.directory.employees[ev.EmployeeID]
	if emp == nil {
		return nil, false
	}
	return &model.EnrichedAttendanceEvent{
		ID:           ev.ID,
		EmployeeID:   ev.EmployeeID,
		EmployeeName: emp.Name,
		Type:         ev.Type,
		Timestamp:    ev.Timestamp,
	}, true
}

func (m *mockEventStore) GetEnrichedByID(ctx context.Context, id string) (*model.EnrichedAttendanceEvent, error) {
	for _, ev := range m.events {
		if ev.ID == id {
			enriched, ok := m.enrich(ev)
			if !ok {
				return nil, nil
			}
			return enriched, nil
		}
	}
	return nil, nil
}

func (m *mockEventStore) ListEnriched(ctx context.Context) ([]model.EnrichedAttendanceEvent, error) {
	out := []model.EnrichedAttendanceEvent{}
	for i := len(m.events) - 1; i >= 0; i-- {
		if enriched, ok := m.enrich(m.events[i]); ok {
			out = append(out, *enriched)
		}
	}
	return out, nil
}

type mockBroadcaster struct {
	published []model.EnrichedAttendanceEvent
}

func (m *mockBroadcaster) Publish(event model.EnrichedAttendanceEvent) {
	m.published = append(m.published, event)
}

func newTestService() (*AttendanceService, *mockEventStore, *mockDirectory, *mockBroadcaster) {
	dir := &mockDirectory{employees: map[string]*model.Employee{
		"e1": {ID: "e1", Name: "Alice", Email: "alice@parlour.com", Role: model.RoleEmployee},
		"e2": {ID: "e2", Name: "Bob", Email: "bob@parlour.com", Role: model.RoleEmployee},
	}}
	store := &mockEventStore{directory: dir, clock: time.Now().UTC()}
	b := &mockBroadcaster{}
	return NewAttendanceService(store, dir, b), store, dir, b
}

func TestPunch_RecordsAndBroadcasts(t *testing.T) {
	svc, store, _, b := newTestService()

	before := time.Now().UTC()
	event, err := svc.Punch(context.Background(), "e1", "in")
	require.NoError(t, err)

	assert.Equal(t, "e1", event.EmployeeID)
	assert.Equal(t, "Alice", event.EmployeeName)
	assert.Equal(t, model.PunchIn, event.Type)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.Before(before))

	require.Len(t, store.events, 1)
	require.Len(t, b.published, 1)
	assert.Equal(t, *event, b.published[0])
}

func TestPunch_UnknownEmployee(t *testing.T) {
	svc, store, _, b := newTestService()

	_, err := svc.Punch(context.Background(), "nonexistent-id", "in")
	require.ErrorIs(t, err, model.ErrEmployeeNotFound)

	assert.Empty(t, store.events, "no event must be created")
	assert.Empty(t, b.published, "nothing must be broadcast")
}

func TestPunch_InvalidType(t *testing.T) {
	svc, store, _, b := newTestService()

	for _, bad := range []string{"", "IN", "punch", "inout"} {
		_, err := svc.Punch(context.Background(), "e1", bad)
		require.ErrorIs(t, err, model.ErrInvalidPunchType, "type %q", bad)
	}

	assert.Empty(t, store.events)
	assert.Empty(t, b.published)
}

func TestPunch_NoAlternationEnforced(t *testing.T) {
	svc, store, _, b := newTestService()

	first, err := svc.Punch(context.Background(), "e1", "in")
	require.NoError(t, err)
	second, err := svc.Punch(context.Background(), "e1", "in")
	require.NoError(t, err)

	// Two consecutive "in" punches both succeed and both persist.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.PunchIn, second.Type)
	assert.Len(t, store.events, 2)
	assert.Len(t, b.published, 2)
}

func TestCurrentStatus(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	status, err := svc.CurrentStatus(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.PunchOut, status, "no punches defaults to out")

	_, err = svc.Punch(ctx, "e1", "in")
	require.NoError(t, err)
	status, err = svc.CurrentStatus(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.PunchIn, status)

	_, err = svc.Punch(ctx, "e1", "out")
	require.NoError(t, err)
	status, err = svc.CurrentStatus(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.PunchOut, status)

	// Another employee's punches do not leak into the derivation.
	_, err = svc.Punch(ctx, "e2", "in")
	require.NoError(t, err)
	status, err = svc.CurrentStatus(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.PunchOut, status)

	_, err = svc.CurrentStatus(ctx, "ghost")
	require.ErrorIs(t, err, model.ErrEmployeeNotFound)
}

func TestListLogs_FiltersOrphans(t *testing.T) {
	svc, _, dir, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Punch(ctx, "e1", "in")
	require.NoError(t, err)
	_, err = svc.Punch(ctx, "e2", "in")
	require.NoError(t, err)

	// Deleting Bob from the directory orphans his event.
	delete(dir.employees, "e2")

	logs, err := svc.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "e1", logs[0].EmployeeID)
}

func TestListLogs_MostRecentFirst(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Punch(ctx, "e1", "in")
		require.NoError(t, err)
	}

	logs, err := svc.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	for i := 1; i < len(logs); i++ {
		assert.True(t, !logs[i-1].Timestamp.Before(logs[i].Timestamp), "logs must be timestamp descending")
	}
}
