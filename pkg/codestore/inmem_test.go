package codestore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCodeStore_SetGet(t *testing.T) {
	store := NewInMemoryCodeStore()
	ctx := context.Background()
	principalID := uuid.New()

	err := store.Set(ctx, principalID, "123456", 5*time.Minute)
	require.NoError(t, err)

	code, ok, err := store.Get(ctx, principalID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "123456", code)
}

func TestInMemoryCodeStore_GetMissing(t *testing.T) {
	store := NewInMemoryCodeStore()

	_, ok, err := store.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryCodeStore_SetOverwrites(t *testing.T) {
	store := NewInMemoryCodeStore()
	ctx := context.Background()
	principalID := uuid.New()

	require.NoError(t, store.Set(ctx, principalID, "111111", 5*time.Minute))
	require.NoError(t, store.Set(ctx, principalID, "222222", 5*time.Minute))

	code, ok, err := store.Get(ctx, principalID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "222222", code)
}

func TestInMemoryCodeStore_Delete(t *testing.T) {
	store := NewInMemoryCodeStore()
	ctx := context.Background()
	principalID := uuid.New()

	require.NoError(t, store.Set(ctx, principalID, "123456", 5*time.Minute))
	require.NoError(t, store.Delete(ctx, principalID))

	_, ok, err := store.Get(ctx, principalID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent entry is not an error
	assert.NoError(t, store.Delete(ctx, principalID))
}

func TestInMemoryCodeStore_Expiry(t *testing.T) {
	now := time.Now()
	store := NewInMemoryCodeStore().WithNowFunc(func() time.Time { return now })
	ctx := context.Background()
	principalID := uuid.New()

	require.NoError(t, store.Set(ctx, principalID, "123456", 5*time.Minute))

	now = now.Add(4 * time.Minute)
	code, ok, err := store.Get(ctx, principalID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "123456", code)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, principalID)
	require.NoError(t, err)
	assert.False(t, ok, "entry past its ttl must not be returned")

	// Expired entries are gone for good, even if the clock rolled back
	now = now.Add(-10 * time.Minute)
	_, ok, err = store.Get(ctx, principalID)
	require.NoError(t, err)
	assert.False(t, ok)
}
