// Package monday fetches board items from the Monday.com GraphQL API with
// cursor pagination and a short in-memory cache. Board analytics recompute
// on every request, so the cache only has to absorb the API round trips.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the Monday.com GraphQL endpoint.
	DefaultEndpoint = "https://api.monday.com/v2"

	apiVersion = "2024-01"
	pageSize   = 500

	// DefaultCacheTTL keeps board snapshots warm between dashboard polls.
	DefaultCacheTTL = 5 * time.Minute
)

// ColumnValue is one cell of a board item.
type ColumnValue struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Value string `json:"value,omitempty"`
}

// Item is one raw board item with its column cells.
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// Store is the board access surface consumed by the explorer layer.
type Store interface {
	GetDeals(ctx context.Context, forceRefresh bool) ([]Item, error)
	GetWorkOrders(ctx context.Context, forceRefresh bool) ([]Item, error)
	InvalidateCache()
	CacheAgeMinutes() map[string]float64
}

// Settings configures the API client.
type Settings struct {
	Endpoint          string
	Token             string
	DealsBoardID      string
	WorkOrdersBoardID string
	CacheTTL          time.Duration
	RetryMax          int
}

// DefaultSettings returns production settings for the given credentials.
func DefaultSettings(token, dealsBoardID, woBoardID string) Settings {
	return Settings{
		Endpoint:          DefaultEndpoint,
		Token:             token,
		DealsBoardID:      dealsBoardID,
		WorkOrdersBoardID: woBoardID,
		CacheTTL:          DefaultCacheTTL,
		RetryMax:          3,
	}
}

type client struct {
	settings Settings
	http     *retryablehttp.Client
	clock    func() time.Time

	mu         sync.Mutex
	cache      map[string][]Item
	timestamps map[string]time.Time
}

// NewClient builds a Store backed by the Monday.com API. Rate-limited and
// failed requests retry with exponential backoff.
func NewClient(settings Settings) Store {
	rc := retryablehttp.NewClient()
	rc.RetryMax = settings.RetryMax
	rc.Logger = nil
	rc.HTTPClient.Timeout = 60 * time.Second

	return &client{
		settings:   settings,
		http:       rc,
		clock:      time.Now,
		cache:      make(map[string][]Item),
		timestamps: make(map[string]time.Time),
	}
}

func (c *client) GetDeals(ctx context.Context, forceRefresh bool) ([]Item, error) {
	return c.boardItems(ctx, "deals_"+c.settings.DealsBoardID, c.settings.DealsBoardID, forceRefresh)
}

func (c *client) GetWorkOrders(ctx context.Context, forceRefresh bool) ([]Item, error) {
	return c.boardItems(ctx, "wo_"+c.settings.WorkOrdersBoardID, c.settings.WorkOrdersBoardID, forceRefresh)
}

func (c *client) InvalidateCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string][]Item)
	c.timestamps = make(map[string]time.Time)
}

func (c *client) CacheAgeMinutes() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	ages := make(map[string]float64, len(c.timestamps))
	for key, ts := range c.timestamps {
		ages[key] = math.Round(now.Sub(ts).Minutes()*10) / 10
	}
	return ages
}

func (c *client) boardItems(ctx context.Context, cacheKey, boardID string, forceRefresh bool) ([]Item, error) {
	if !forceRefresh {
		if items, ok := c.cached(cacheKey); ok {
			zerolog.Ctx(ctx).Debug().Str("cache_key", cacheKey).Msg("returning cached board items")
			return items, nil
		}
	}

	items, err := c.fetchBoardItems(ctx, boardID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[cacheKey] = items
	c.timestamps[cacheKey] = c.clock()
	c.mu.Unlock()

	return items, nil
}

func (c *client) cached(key string) ([]Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.timestamps[key]
	if !ok || c.clock().Sub(ts) >= c.settings.CacheTTL {
		return nil, false
	}
	return c.cache[key], true
}

const itemsQuery = `
query($boardId: ID!, $cursor: String) {
  boards(ids: [$boardId]) {
    items_page(limit: %d, cursor: $cursor) {
      cursor
      items {
        id
        name
        column_values {
          id
          title
          text
          value
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		Boards []struct {
			ItemsPage struct {
				Cursor string `json:"cursor"`
				Items  []Item `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *client) fetchBoardItems(ctx context.Context, boardID string) ([]Item, error) {
	logger := zerolog.Ctx(ctx)

	var all []Item
	cursor := ""
	for page := 1; ; page++ {
		logger.Info().Str("board_id", boardID).Int("page", page).Msg("fetching board items")

		variables := map[string]interface{}{"boardId": boardID}
		if cursor != "" {
			variables["cursor"] = cursor
		}

		resp, err := c.query(ctx, graphQLRequest{
			Query:     fmt.Sprintf(itemsQuery, pageSize),
			Variables: variables,
		})
		if err != nil {
			return nil, fmt.Errorf("board %s page %d: %w", boardID, page, err)
		}

		if len(resp.Data.Boards) == 0 {
			logger.Warn().Str("board_id", boardID).Msg("no boards returned")
			break
		}

		itemsPage := resp.Data.Boards[0].ItemsPage
		all = append(all, itemsPage.Items...)

		cursor = itemsPage.Cursor
		if cursor == "" {
			break
		}
	}

	logger.Info().Str("board_id", boardID).Int("items", len(all)).Msg("board fetch complete")
	return all, nil
}

func (c *client) query(ctx context.Context, reqBody graphQLRequest) (*graphQLResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.settings.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.settings.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("monday API returned status %d", resp.StatusCode)
	}

	var result graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", result.Errors[0].Message)
	}
	return &result, nil
}
