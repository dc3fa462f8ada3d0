package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanksha/strajk-bowling-booking/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetItem(t *testing.T) {
	store := session.New(time.Minute)

	_, found := store.GetItem("booking")
	assert.False(t, found)

	store.SetItem("booking", `{"bookingNumber":"STR1000"}`)
	value, found := store.GetItem("booking")

	require.True(t, found)
	assert.Equal(t, `{"bookingNumber":"STR1000"}`, value)
}

func TestSetItemOverwrites(t *testing.T) {
	store := session.New(time.Minute)

	store.SetItem("booking", "first")
	store.SetItem("booking", "second")

	value, _ := store.GetItem("booking")
	assert.Equal(t, "second", value)
}

func TestRemoveItemAndClear(t *testing.T) {
	store := session.New(time.Minute)

	store.SetItem("booking", "a")
	store.SetItem("other", "b")

	store.RemoveItem("booking")
	_, found := store.GetItem("booking")
	assert.False(t, found)

	store.Clear()
	_, found = store.GetItem("other")
	assert.False(t, found)
}

func TestItemsExpireWithSession(t *testing.T) {
	store := session.New(20 * time.Millisecond)

	store.SetItem("booking", "a")

	assert.Eventually(t, func() bool {
		_, found := store.GetItem("booking")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestSessionsAreIsolated(t *testing.T) {
	first := session.New(0)
	second := session.New(0)

	first.SetItem("booking", "a")

	_, found := second.GetItem("booking")
	assert.False(t, found)
	assert.NotEqual(t, first.ID(), second.ID())

	_, err := uuid.Parse(first.ID())
	assert.NoError(t, err)
}
