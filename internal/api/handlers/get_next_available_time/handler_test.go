package get_next_available_time

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeCalculator struct {
	lastAfter time.Time
	slot      *availability.NextSlot
}

func (c *fakeCalculator) NextAvailable(_ context.Context, _ int64, after time.Time, _ *int64, _ int) (*availability.NextSlot, error) {
	c.lastAfter = after
	return c.slot, nil
}

type fixedTime struct {
	now time.Time
}

func (t fixedTime) Now() time.Time { return t.now }

func doRequest(t *testing.T, calc *fakeCalculator, query string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(calc, noopLogger{})
	h.timeProvider = fixedTime{now: time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/service-points/1/next-available-time?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"pointId": "1"})

	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_AfterWithTime(t *testing.T) {
	calc := &fakeCalculator{slot: &availability.NextSlot{
		Date:      time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("15:00"), AvailablePosts: 1, TotalPosts: 3,
	}}

	rec := doRequest(t, calc, "after=2026-04-14&time=14:30&duration=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 4, 14, 14, 30, 0, 0, time.UTC), calc.lastAfter)
	assert.Contains(t, rec.Body.String(), `"startTime":"15:00"`)
}

func TestHandle_AfterDateAloneMeansStartOfDay(t *testing.T) {
	calc := &fakeCalculator{}

	rec := doRequest(t, calc, "after=2026-04-14&duration=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), calc.lastAfter)
	// Слот не найден - в ответе null
	assert.Contains(t, rec.Body.String(), `"slot":null`)
}

func TestHandle_TimeWithoutAfterRefinesToday(t *testing.T) {
	calc := &fakeCalculator{}

	rec := doRequest(t, calc, "time=12:00&duration=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 4, 13, 12, 0, 0, 0, time.UTC), calc.lastAfter)
}

func TestHandle_InvalidTime(t *testing.T) {
	rec := doRequest(t, &fakeCalculator{}, "after=2026-04-14&time=25:99&duration=30")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
