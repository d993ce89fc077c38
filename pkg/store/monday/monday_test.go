package monday

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageResponse(cursor string, items ...Item) map[string]interface{} {
	if items == nil {
		items = []Item{}
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"boards": []interface{}{
				map[string]interface{}{
					"items_page": map[string]interface{}{
						"cursor": cursor,
						"items":  items,
					},
				},
			},
		},
	}
}

func testSettings(endpoint string) Settings {
	s := DefaultSettings("test-token", "101", "202")
	s.Endpoint = endpoint
	s.RetryMax = 2
	return s
}

func TestGetDeals_Pagination(t *testing.T) {
	var requests []graphQLRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-01", r.Header.Get("API-Version"))

		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		if len(requests) == 1 {
			require.NoError(t, json.NewEncoder(w).Encode(
				pageResponse("next-page", Item{ID: "1", Name: "Deal A"})))
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(
			pageResponse("", Item{ID: "2", Name: "Deal B"})))
	}))
	defer server.Close()

	store := NewClient(testSettings(server.URL))
	items, err := store.GetDeals(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Deal A", items[0].Name)
	assert.Equal(t, "Deal B", items[1].Name)

	require.Len(t, requests, 2)
	assert.Equal(t, "101", requests[0].Variables["boardId"])
	_, hasCursor := requests[0].Variables["cursor"]
	assert.False(t, hasCursor)
	assert.Equal(t, "next-page", requests[1].Variables["cursor"])
}

func TestGetDeals_Caching(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, json.NewEncoder(w).Encode(
			pageResponse("", Item{ID: "1", Name: "Deal A"})))
	}))
	defer server.Close()

	store := NewClient(testSettings(server.URL))
	ctx := context.Background()

	_, err := store.GetDeals(ctx, false)
	require.NoError(t, err)
	_, err = store.GetDeals(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = store.GetDeals(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	store.InvalidateCache()
	_, err = store.GetDeals(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestGetWorkOrders_SeparateCacheKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(pageResponse("")))
	}))
	defer server.Close()

	store := NewClient(testSettings(server.URL))
	ctx := context.Background()

	_, err := store.GetDeals(ctx, false)
	require.NoError(t, err)
	_, err = store.GetWorkOrders(ctx, false)
	require.NoError(t, err)

	ages := store.CacheAgeMinutes()
	assert.Contains(t, ages, "deals_101")
	assert.Contains(t, ages, "wo_202")
}

func TestCacheAgeMinutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(pageResponse("")))
	}))
	defer server.Close()

	c := NewClient(testSettings(server.URL)).(*client)
	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	c.clock = func() time.Time { return now }

	_, err := c.GetDeals(context.Background(), false)
	require.NoError(t, err)

	now = now.Add(150 * time.Second)
	assert.Equal(t, map[string]float64{"deals_101": 2.5}, c.CacheAgeMinutes())
}

func TestQuery_GraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []interface{}{map[string]interface{}{"message": "invalid board id"}},
		}))
	}))
	defer server.Close()

	store := NewClient(testSettings(server.URL))
	_, err := store.GetDeals(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid board id")
}

func TestQuery_RetriesRateLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(
			pageResponse("", Item{ID: "1", Name: "Deal A"})))
	}))
	defer server.Close()

	c := NewClient(testSettings(server.URL)).(*client)
	c.http.RetryWaitMin = time.Millisecond
	c.http.RetryWaitMax = 5 * time.Millisecond

	items, err := c.GetDeals(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, calls)
}
