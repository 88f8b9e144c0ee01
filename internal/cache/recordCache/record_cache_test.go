package recordCache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"AIOverview_Analysis/internal/cache"
	"AIOverview_Analysis/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_NormalizesKeyword(t *testing.T) {
	assert.Equal(t, "serp:2840:en:best crm", Key("2840", "en", "  Best CRM "))
	assert.Equal(t, Key("2840", "en", "best crm"), Key("2840", "en", "BEST CRM"))
	assert.NotEqual(t, Key("2840", "en", "crm"), Key("2826", "en", "crm"))
}

func TestRecordCache_RoundTrip_Memory(t *testing.T) {
	rc := New(cache.NewMemoryCache(time.Hour), time.Hour)
	ctx := context.Background()

	payload := json.RawMessage(`[{"keyword":"crm","items":[]}]`)
	require.NoError(t, rc.Set(ctx, "2840", "en", "CRM", payload))

	got, err := rc.Get(ctx, "2840", "en", "crm")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got))
}

func TestRecordCache_RoundTrip_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := cache.NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	rc := New(store, time.Minute)
	ctx := context.Background()

	payload := json.RawMessage(`{"keyword":"crm"}`)
	require.NoError(t, rc.Set(ctx, "2840", "en", "crm", payload))
	assert.True(t, mr.Exists("serp:2840:en:crm"))

	got, err := rc.Get(ctx, "2840", "en", "crm")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got))

	require.NoError(t, rc.Delete(ctx, "2840", "en", "crm"))
	_, err = rc.Get(ctx, "2840", "en", "crm")
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestRecordCache_SkipsEmptyPayload(t *testing.T) {
	rc := New(cache.NewMemoryCache(time.Hour), time.Hour)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "2840", "en", "crm", nil))
	_, err := rc.Get(ctx, "2840", "en", "crm")
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestRecordCache_RejectsCorruptEntry(t *testing.T) {
	store := cache.NewMemoryCache(time.Hour)
	rc := New(store, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, Key("2840", "en", "crm"), []byte("{not json"), time.Hour))

	_, err := rc.Get(ctx, "2840", "en", "crm")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrCacheMiss)
}
