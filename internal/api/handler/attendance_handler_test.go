package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlour.service/internal/core"
	"parlour.service/internal/core/model"
	"parlour.service/internal/realtime"
)

// Minimal in-memory store and directory backing the real service.

type fakeDirectory struct {
	employees map[string]*model.Employee
}

func (f *fakeDirectory) List(ctx context.Context) ([]model.Employee, error) { return nil, nil }
func (f *fakeDirectory) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	return f.employees[id], nil
}
func (f *fakeDirectory) Create(ctx context.Context, e *model.Employee) error { return nil }
func (f *fakeDirectory) Update(ctx context.Context, e *model.Employee) (bool, error) {
	return false, nil
}
func (f *fakeDirectory) Delete(ctx context.Context, id string) (bool, error) { return false, nil }

type fakeEventStore struct {
	directory *fakeDirectory
	events    []model.AttendanceEvent
	clock     time.Time
}

func (f *fakeEventStore) Append(ctx context.Context, employeeID string, punchType model.PunchType) (*model.AttendanceEvent, error) {
	f.clock = f.clock.Add(time.Second)
	ev := model.AttendanceEvent{
		ID:         fmt.Sprintf("ev-%d", len(f.events)+1),
		EmployeeID: employeeID,
		Type:       punchType,
		Timestamp:  f.clock,
	}
	f.events = append(f.events, ev)
	return &ev, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id string) (*model.AttendanceEvent, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

func (f *fakeEventStore) ListAll(ctx context.Context) ([]model.AttendanceEvent, error) {
	return f.events, nil
}

func (f *fakeEventStore) FindLastByEmployee(ctx context.Context, employeeID string) (*model.AttendanceEvent, error) {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].EmployeeID == employeeID {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

func (f *fakeEventStore) enrich(ev model.AttendanceEvent) *model.EnrichedAttendanceEvent {
	emp := f.directory.employees[ev.EmployeeID]
	if emp == nil {
		return nil
	}
	return &model.EnrichedAttendanceEvent{
		ID:           ev.ID,
		EmployeeID:   ev.EmployeeID,
		EmployeeName: emp.Name,
		Type:         ev.Type,
		Timestamp:    ev.Timestamp,
	}
}

func (f *fakeEventStore) GetEnrichedByID(ctx context.Context, id string) (*model.EnrichedAttendanceEvent, error) {
	for _, ev := range f.events {
		if ev.ID == id {
			return f.enrich(ev), nil
		}
	}
	return nil, nil
}

func (f *fakeEventStore) ListEnriched(ctx context.Context) ([]model.EnrichedAttendanceEvent, error) {
	out := []model.EnrichedAttendanceEvent{}
	for i := len(f.events) - 1; i >= 0; i-- {
		if enriched := f.enrich(f.events[i]); enriched != nil {
			out = append(out, *enriched)
		}
	}
	return out, nil
}

func newTestRouter() (*mux.Router, *fakeEventStore) {
	dir := &fakeDirectory{employees: map[string]*model.Employee{
		"e1": {ID: "e1", Name: "Alice", Email: "alice@parlour.com", Role: model.RoleEmployee},
	}}
	store := &fakeEventStore{directory: dir, clock: time.Now().UTC()}
	svc := core.NewAttendanceService(store, dir, realtime.NewHub())

	h := &AttendanceHandler{Service: svc}

	r := mux.NewRouter()
	r.HandleFunc("/api/attendance", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/attendance/status/{employeeId}", h.Status).Methods(http.MethodGet)
	r.HandleFunc("/api/attendance/punch", h.Punch).Methods(http.MethodPost)
	return r, store
}

func doRequest(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPunchEndpoint_Created(t *testing.T) {
	r, store := newTestRouter()

	rec := doRequest(r, http.MethodPost, "/api/attendance/punch", `{"employeeId":"e1","type":"in"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["_id"])
	assert.Equal(t, "e1", body["employeeId"])
	assert.Equal(t, "Alice", body["employeeName"])
	assert.Equal(t, "in", body["type"])
	assert.NotEmpty(t, body["timestamp"])

	require.Len(t, store.events, 1)
}

func TestPunchEndpoint_EmployeeNotFound(t *testing.T) {
	r, store := newTestRouter()

	rec := doRequest(r, http.MethodPost, "/api/attendance/punch", `{"employeeId":"nonexistent-id","type":"in"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Employee not found")
	assert.Empty(t, store.events, "store event count must be unchanged")
}

func TestPunchEndpoint_BadRequests(t *testing.T) {
	r, _ := newTestRouter()

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"employeeId`},
		{name: "missing employee id", body: `{"type":"in"}`},
		{name: "invalid type", body: `{"employeeId":"e1","type":"sideways"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(r, http.MethodPost, "/api/attendance/punch", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListEndpoint_MostRecentFirst(t *testing.T) {
	r, _ := newTestRouter()

	for i := 0; i < 3; i++ {
		rec := doRequest(r, http.MethodPost, "/api/attendance/punch", `{"employeeId":"e1","type":"in"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(r, http.MethodGet, "/api/attendance", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var logs []model.EnrichedAttendanceEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 3)
	for i := 1; i < len(logs); i++ {
		assert.True(t, !logs[i-1].Timestamp.Before(logs[i].Timestamp))
	}
}

func TestStatusEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rec := doRequest(r, http.MethodGet, "/api/attendance/status/e1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"out"`)

	doRequest(r, http.MethodPost, "/api/attendance/punch", `{"employeeId":"e1","type":"in"}`)

	rec = doRequest(r, http.MethodGet, "/api/attendance/status/e1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"in"`)

	rec = doRequest(r, http.MethodGet, "/api/attendance/status/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
