package facade_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jacentio/booking/facade"
	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

var nye = time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

func newFacade(t *testing.T, opts ...facade.Option) (*facade.BookingFacade, *store.Memory) {
	t.Helper()
	s := store.NewMemory()
	f, err := facade.NewDefault(s, store.NewIDGeneratorFrom(0), facade.DefaultConfig(), opts...)
	require.NoError(t, err)
	return f, s
}

func seed(t *testing.T, f *facade.BookingFacade) (*model.User, *model.Event) {
	t.Helper()
	u, err := f.CreateUser(model.NewUser("Dummy user", "dummy@email.com"))
	require.NoError(t, err)
	e, err := f.CreateEvent(model.NewEvent("Dummy title", nye))
	require.NoError(t, err)
	return u, e
}

func counterSum(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

// --- Construction ---

func Test_New_RequiresServices(t *testing.T) {
	_, err := facade.New(nil, nil, nil, nil)
	assert.ErrorIs(t, err, store.ErrInvalidArgument)

	_, err = facade.NewDefault(nil, store.NewIDGenerator(), facade.DefaultConfig())
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

func Test_WithMeter_RejectsNil(t *testing.T) {
	_, err := facade.NewDefault(store.NewMemory(), store.NewIDGenerator(), facade.DefaultConfig(), facade.WithMeter(nil))
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

func Test_NewDefault_ClampsLockStripes(t *testing.T) {
	for _, stripes := range []int{-5, 0, 1, 1000} {
		_, err := facade.NewDefault(store.NewMemory(), store.NewIDGenerator(), facade.Config{LockStripes: stripes})
		assert.NoError(t, err, "stripes=%d", stripes)
	}
}

// --- Guarded deletes ---

func Test_DeleteUser_WithTicketsIsRefused(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f, _ := newFacade(t, facade.WithLogger(logger))
	u, e := seed(t, f)

	ticket, err := f.BookTicket(u.ID, e.ID, 1, model.Premium)
	require.NoError(t, err)

	_, err = f.DeleteUser(u.ID)
	assert.ErrorIs(t, err, store.ErrHasTickets)
	assert.ErrorIs(t, err, store.ErrIllegalState)
	assert.Contains(t, err.Error(), "user (")
	assert.Contains(t, buf.String(), "delete blocked by booked tickets")

	got, err := f.GetUserByID(u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "user must still exist")

	cancelled, err := f.CancelTicket(ticket.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	deleted, err := f.DeleteUser(u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func Test_DeleteEvent_WithTicketsIsRefused(t *testing.T) {
	f, _ := newFacade(t)
	u, e := seed(t, f)

	_, err := f.BookTicket(u.ID, e.ID, 1, model.Standard)
	require.NoError(t, err)

	_, err = f.DeleteEvent(e.ID)
	assert.ErrorIs(t, err, store.ErrHasTickets)
	assert.Contains(t, err.Error(), "event (")
}

func Test_Delete_MissingIsFalse(t *testing.T) {
	f, _ := newFacade(t)

	deleted, err := f.DeleteUser(404)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = f.DeleteEvent(404)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = f.DeleteUser(0)
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

func Test_Delete_WithoutTickets(t *testing.T) {
	f, s := newFacade(t)
	u, e := seed(t, f)

	deleted, err := f.DeleteEvent(e.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.DeleteUser(u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, s.Len())
}

func Test_ConcurrentDeleteAndBook_NeverOrphans(t *testing.T) {
	for round := 0; round < 20; round++ {
		f, _ := newFacade(t)
		u, e := seed(t, f)

		var wg sync.WaitGroup
		var bookErr, deleteErr error
		var deleted bool
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, bookErr = f.BookTicket(u.ID, e.ID, 1, model.Bar)
		}()
		go func() {
			defer wg.Done()
			deleted, deleteErr = f.DeleteEvent(e.ID)
		}()
		wg.Wait()

		if deleted {
			// The booking either lost the race and saw no event, or never ran.
			assert.ErrorIs(t, bookErr, store.ErrInvalidArgument)
			tickets, err := f.GetBookedTicketsForUser(u, 10, 1)
			require.NoError(t, err)
			assert.Empty(t, tickets)
		} else {
			require.NoError(t, bookErr)
			assert.ErrorIs(t, deleteErr, store.ErrHasTickets)
		}
	}
}

// --- Delegation and metrics ---

func Test_Queries_Delegate(t *testing.T) {
	f, _ := newFacade(t)
	u, e := seed(t, f)

	byEmail, err := f.GetUserByEmail("dummy@email.com")
	require.NoError(t, err)
	assert.Equal(t, u, byEmail)

	byName, err := f.GetUsersByName("Dummy", 10, 1)
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byTitle, err := f.GetEventsByTitle("title", 10, 1)
	require.NoError(t, err)
	assert.Len(t, byTitle, 1)

	forDay, err := f.GetEventsForDay(nye, 10, 1)
	require.NoError(t, err)
	assert.Len(t, forDay, 1)

	updated, err := f.UpdateEvent(&model.Event{ID: e.ID, Title: "Renamed", Date: nye})
	require.NoError(t, err)
	got, err := f.GetEventByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Title, got.Title)

	_, err = f.UpdateUser(&model.User{ID: u.ID + 100, Name: "Ghost"})
	assert.ErrorIs(t, err, store.ErrInvalidArgument)

	_, err = f.GetUsersByName("Dummy", 101, 1)
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

func Test_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	f, _ := newFacade(t, facade.WithMeter(provider.Meter("test")))
	u, e := seed(t, f)

	ticket, err := f.BookTicket(u.ID, e.ID, 4, model.Bar)
	require.NoError(t, err)
	_, err = f.BookTicket(u.ID, e.ID, 4, model.Standard)
	require.ErrorIs(t, err, store.ErrPlaceOccupied)
	_, err = f.DeleteEvent(e.ID)
	require.ErrorIs(t, err, store.ErrHasTickets)
	_, err = f.CancelTicket(ticket.ID)
	require.NoError(t, err)
	_, err = f.CancelTicket(ticket.ID)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(1), counterSum(t, rm, facade.MetricTicketsBooked))
	assert.Equal(t, int64(1), counterSum(t, rm, facade.MetricTicketsRejected))
	assert.Equal(t, int64(1), counterSum(t, rm, facade.MetricTicketsCancelled))
	assert.Equal(t, int64(1), counterSum(t, rm, facade.MetricDeletesBlocked))
}
