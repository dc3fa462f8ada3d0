package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/strajk-bowling-booking/api"
	bk "github.com/hanksha/strajk-bowling-booking/booking"
	"github.com/hanksha/strajk-bowling-booking/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	router := api.NewRouter(logger, nil, api.NewBookingHandler(bk.NewService(bk.NewStore())))

	var lookups atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path != "/api/health" {
			lookups.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	return server, &lookups
}

func lanes(n int) *int {
	return &n
}

func TestCreateBooking(t *testing.T) {
	server, _ := newBookingServer(t)
	c := client.NewClient(server.URL)

	created, err := c.CreateBooking(context.Background(), bk.NewBooking{
		Date:    "2025-01-10",
		Time:    "14:00",
		Players: []int{1, 2},
		Lanes:   lanes(1),
	})

	require.NoError(t, err)
	assert.Equal(t, "STR1000", created.BookingNumber)
	assert.Equal(t, 340, created.TotalPrice)
}

func TestCreateBookingRejected(t *testing.T) {
	server, _ := newBookingServer(t)
	c := client.NewClient(server.URL)

	_, err := c.CreateBooking(context.Background(), bk.NewBooking{Date: "2025-01-10"})

	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
}

func TestGetBooking(t *testing.T) {
	server, lookups := newBookingServer(t)
	ctx := context.Background()

	creator := client.NewClient(server.URL)
	created, err := creator.CreateBooking(ctx, bk.NewBooking{Players: []int{1, 2, 3, 4, 5}, Lanes: lanes(2)})
	require.NoError(t, err)

	reader := client.NewClient(server.URL)

	first, err := reader.GetBooking(ctx, created.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, 800, first.TotalPrice)

	second, err := reader.GetBooking(ctx, created.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, int32(1), lookups.Load())
}

func TestGetBookingServedFromCreateCache(t *testing.T) {
	server, lookups := newBookingServer(t)
	ctx := context.Background()
	c := client.NewClient(server.URL)

	created, err := c.CreateBooking(ctx, bk.NewBooking{Players: []int{1}, Lanes: lanes(1)})
	require.NoError(t, err)

	fetched, err := c.GetBooking(ctx, created.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
	assert.Equal(t, int32(0), lookups.Load())
}

func TestCachedBookingIsNotShared(t *testing.T) {
	server, lookups := newBookingServer(t)
	ctx := context.Background()
	c := client.NewClient(server.URL)

	created, err := c.CreateBooking(ctx, bk.NewBooking{
		Players:   []int{1, 2},
		Lanes:     lanes(1),
		ShoeSizes: []bk.ShoeSize{{Player: 1, Size: 42}},
	})
	require.NoError(t, err)

	created.Players[0] = 99

	first, err := c.GetBooking(ctx, created.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, first.Players)

	first.Players[1] = 77
	first.ShoeSizes[0].Size = 30

	second, err := c.GetBooking(ctx, created.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, second.Players)
	assert.Equal(t, []bk.ShoeSize{{Player: 1, Size: 42}}, second.ShoeSizes)
	assert.Equal(t, int32(0), lookups.Load())
}

func TestGetBookingNotFound(t *testing.T) {
	server, _ := newBookingServer(t)
	c := client.NewClient(server.URL)

	_, err := c.GetBooking(context.Background(), "STR4242")

	assert.ErrorIs(t, err, bk.ErrBookingNotFound)
}

func TestGetBookingBlankNumber(t *testing.T) {
	c := client.NewClient("http://127.0.0.1:0")

	_, err := c.GetBooking(context.Background(), "")

	assert.ErrorIs(t, err, bk.ErrMissingBookingNumber)
}

func TestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to create booking"}`))
	}))
	defer server.Close()

	c := client.NewClient(server.URL)
	_, err := c.CreateBooking(context.Background(), bk.NewBooking{Players: []int{1}, Lanes: lanes(1)})

	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 500, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "failed to create booking")
}

func TestHealth(t *testing.T) {
	server, _ := newBookingServer(t)

	require.NoError(t, client.NewClient(server.URL).Health(context.Background()))
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := client.NewClient(url).Health(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}
