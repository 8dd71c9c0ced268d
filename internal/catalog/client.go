// Package catalog searches the remote explanation service for features that
// can be steered.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/logger"
	"github.com/Rorical/RoriSteer/internal/models"
)

const (
	MinQueryLength = 3

	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Poster is the transport used by the client.
type Poster interface {
	PostJSON(ctx context.Context, url string, in any) ([]byte, error)
}

type Client struct {
	poster  Poster
	url     string
	modelID string
	cache   *cache.Cache
	log     *zap.Logger
}

func NewClient(poster Poster, url, modelID string, log *zap.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		poster:  poster,
		url:     url,
		modelID: modelID,
		cache:   cache.New(cacheTTL, cacheCleanup),
		log:     log.With(zap.String("component", "catalog")),
	}
}

type searchRequest struct {
	ModelID string `json:"modelId"`
	Query   string `json:"query"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Description *string      `json:"description"`
	Layer       *string      `json:"layer"`
	Index       *flexibleInt `json:"index"`
}

// flexibleInt accepts 62610 as well as "62610".
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexibleInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("index is neither number nor string: %s", data)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("index %q is not an integer", s)
	}
	*f = flexibleInt(n)
	return nil
}

// ValidateQuery rejects queries the service would not be asked about.
func ValidateQuery(query string) error {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		return &apperr.ValidationError{
			Field:   "query",
			Message: fmt.Sprintf("Search query must be at least %d characters", MinQueryLength),
		}
	}
	return nil
}

// Search returns the explanations matching query. An empty slice means no
// matches. Successful results are cached per model and normalized query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Explanation, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)

	key := c.modelID + "\x00" + strings.ToLower(query)
	if cached, ok := c.cache.Get(key); ok {
		c.log.Debug("search served from cache", zap.String("query", query))
		return clone(cached.([]models.Explanation)), nil
	}

	body, err := c.poster.PostJSON(ctx, c.url, searchRequest{ModelID: c.modelID, Query: query})
	if err != nil {
		return nil, err
	}

	results, err := parseResults(body)
	if err != nil {
		c.log.Warn("search response rejected", zap.String("query", query), zap.Error(err))
		return nil, &apperr.ParseError{Service: apperr.ServiceCatalog, Err: err}
	}

	c.cache.Set(key, results, cache.DefaultExpiration)
	c.log.Info("search finished", zap.String("query", query), zap.Int("results", len(results)))
	return clone(results), nil
}

func parseResults(body []byte) ([]models.Explanation, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	results := make([]models.Explanation, 0, len(resp.Results))
	for i, r := range resp.Results {
		if r.Description == nil || r.Layer == nil || r.Index == nil {
			return nil, fmt.Errorf("result %d: %w", i, errMissingField)
		}
		results = append(results, models.Explanation{
			Description: *r.Description,
			Layer:       *r.Layer,
			Index:       int(*r.Index),
		})
	}
	return results, nil
}

var errMissingField = errors.New("missing description, layer or index")

func clone(in []models.Explanation) []models.Explanation {
	out := make([]models.Explanation, len(in))
	copy(out, in)
	return out
}
