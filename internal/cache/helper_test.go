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

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	var missed cachedUser
	found, err := GetJSON(ctx, UserKey(1), &missed)
	require.NoError(t, err)
	assert.False(t, found)

	stored := cachedUser{ID: 1, Username: "ana"}
	require.NoError(t, SetJSON(ctx, UserKey(1), stored, UserTTL))

	var got cachedUser
	found, err = GetJSON(ctx, UserKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, stored, got)
}

func TestAside(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			*dest = cachedUser{ID: 7, Username: "ben"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, "ben", first.Username)
	assert.Equal(t, 1, fetches)

	// second read is served from cache
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, "ben", second.Username)
	assert.Equal(t, 1, fetches)

	// after TTL expiry the fetch runs again
	mr.FastForward(UserTTL + time.Second)
	var third cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &third, UserTTL, fetch(&third)))
	assert.Equal(t, 2, fetches)
}

func TestAside_FetchError(t *testing.T) {
	withTestRedis(t)

	var dest cachedUser
	wantErr := errors.New("db down")
	err := Aside(context.Background(), UserKey(9), &dest, UserTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestInvalidateUser(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedUser{ID: 3, Username: "cleo"}, UserTTL))
	InvalidateUser(ctx, 3)

	var got cachedUser
	found, err := GetJSON(ctx, UserKey(3), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientDegradesGracefully(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, UserKey(1), &cachedUser{})
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1}, UserTTL))

	// Aside falls through to the fetch every time
	var dest cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &dest, UserTTL, func() error {
		dest = cachedUser{ID: 1, Username: "ana"}
		return nil
	}))
	assert.Equal(t, "ana", dest.Username)
}
