package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var missing payload
	found, err := GetJSON(ctx, "absent", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "present", payload{Name: "a", Count: 2}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "present", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestGetSetJSON_NoClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "anything", &struct{}{})
	require.NoError(t, err)
	assert.False(t, found, "a missing cache behaves like a permanent miss")
	require.NoError(t, SetJSON(ctx, "anything", 1, time.Minute))
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			fetches++
			*dest = []string{"from-store"}
			return nil
		}
	}

	var first []string
	require.NoError(t, Aside(ctx, "list", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, []string{"from-store"}, first)

	// Second read is served from the cache.
	var second []string
	require.NoError(t, Aside(ctx, "list", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, []string{"from-store"}, second)
}

func TestAside_FetchError(t *testing.T) {
	setupMiniredis(t)

	wantErr := errors.New("store down")
	var dest []string
	err := Aside(context.Background(), "list", &dest, time.Minute, func() error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileKey(1), "cached", time.Minute))
	require.NoError(t, SetJSON(ctx, ProfileListKey, "cached", time.Minute))

	InvalidateProfile(ctx, 1)

	assert.False(t, mr.Exists(ProfileKey(1)))
	assert.False(t, mr.Exists(ProfileListKey), "list key invalidates with the profile")
}
