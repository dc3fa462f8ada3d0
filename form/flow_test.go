package form_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/strajk-bowling-booking/api"
	bk "github.com/hanksha/strajk-bowling-booking/booking"
	"github.com/hanksha/strajk-bowling-booking/client"
	"github.com/hanksha/strajk-bowling-booking/confirmation"
	"github.com/hanksha/strajk-bowling-booking/form"
	"github.com/hanksha/strajk-bowling-booking/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clock() time.Time {
	return time.Date(2025, 1, 3, 9, 30, 0, 0, time.UTC)
}

func TestBookAndConfirm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := api.NewRouter(zap.NewNop(), nil, api.NewBookingHandler(bk.NewService(bk.NewStore())))
	server := httptest.NewServer(router)
	defer server.Close()

	storage := session.New(time.Minute)
	f := form.New(client.NewClient(server.URL), storage, nil, form.WithClock(clock))
	f.SetDate("2025-01-10")
	f.SetTime("14:00")
	f.SetPlayerCount(6)
	require.NoError(t, f.SetShoeSize(1, 42))
	require.NoError(t, f.SetShoeSize(6, 45))
	f.RemoveShoeSize(6)

	created, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "STR1000", created.BookingNumber)
	assert.Equal(t, 2, created.Lanes)
	assert.Equal(t, 6*120+2*100, created.TotalPrice)
	assert.Equal(t, []bk.ShoeSize{{Player: 1, Size: 42}}, created.ShoeSizes)

	view := confirmation.Load(storage, nil)
	require.True(t, view.HasBooking())
	assert.True(t, view.Consistent())

	var out bytes.Buffer
	require.NoError(t, view.Render(&out))
	assert.Contains(t, out.String(), "Bokningsnummer: STR1000")
	assert.Contains(t, out.String(), "Totalt: 920 kr")
	assert.NotContains(t, out.String(), "Spelare 6: Storlek")
}

func TestBookingFailsWhenServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	storage := session.New(time.Minute)
	f := form.New(client.NewClient(server.URL), storage, nil, form.WithClock(clock))
	f.SetDate("2025-01-10")
	f.SetTime("14:00")

	_, err := f.Submit(context.Background())

	require.True(t, errors.Is(err, form.ErrBookingFailed))
	assert.False(t, f.Submitting())
	assert.False(t, confirmation.Load(storage, nil).HasBooking())
}
