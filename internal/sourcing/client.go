package sourcing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/shopblue/storefront/internal/domain"
)

// Citation is a web-grounding reference attached to a whole result batch.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Batch is one sourcing round trip: untrusted candidate products plus the
// citations that grounded them.
type Batch struct {
	Products  []domain.Product `json:"products"`
	Citations []Citation       `json:"citations"`
}

// Client calls the generative sourcing service. Its contract with callers
// is deliberately narrow: Search never fails, it just comes back empty.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*generateResponse]
	sfg     singleflight.Group
	logger  *zap.Logger

	// randFloat feeds the synthesized rating/stock fields; swappable in tests.
	randFloat func() float64
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[*generateResponse](gobreaker.Settings{
		Name: "sourcing",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		Timeout: time.Minute,
	})

	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		model:     model,
		client:    &http.Client{Timeout: timeout},
		breaker:   breaker,
		logger:    logger,
		randFloat: rand.Float64,
	}
}

// Search asks the sourcing service for candidate products matching query.
// Any transport, protocol or decode failure yields an empty batch; the
// sourcing panel renders that as "no results" rather than an error. In-flight
// identical queries are coalesced.
func (c *Client) Search(ctx context.Context, query string) Batch {
	v, err, _ := c.sfg.Do(query, func() (any, error) {
		resp, err := c.breaker.Execute(func() (*generateResponse, error) {
			return c.generate(ctx, query)
		})
		if err != nil {
			return nil, err
		}
		return c.decodeBatch(resp), nil
	})
	if err != nil {
		c.logger.Warn("sourcing search failed", zap.String("query", query), zap.Error(err))
		return Batch{}
	}
	return v.(Batch)
}

// candidate is the fixed response schema the service is asked to fill.
type candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

type textPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []textPart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type groundingChunk struct {
	Web webSource `json:"web"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type responseCandidate struct {
	Content           content           `json:"content"`
	GroundingMetadata groundingMetadata `json:"groundingMetadata"`
}

type generateResponse struct {
	Candidates []responseCandidate `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, query string) (*generateResponse, error) {
	prompt := fmt.Sprintf(
		"Search CJ Dropshipping for products matching: %q. Return 4 realistic products with IDs, names, descriptions, prices, and categories.",
		query)
	reqBody := generateRequest{
		Contents:         []content{{Parts: []textPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sourcing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sourcing service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode sourcing response: %w", err)
	}
	return &out, nil
}

func (c *Client) decodeBatch(resp *generateResponse) Batch {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return Batch{}
	}

	var raw []candidate
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &raw); err != nil {
		c.logger.Warn("unparseable sourcing payload", zap.Error(err))
		return Batch{}
	}

	var batch Batch
	for _, r := range raw {
		batch.Products = append(batch.Products, domain.Product{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Category:    r.Category,
			Image:       r.Image,
			Rating:      4.0 + c.randFloat(),
			Stock:       10 + int(c.randFloat()*100),
			Source:      domain.SourceSourced,
		})
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web.URI != "" {
			batch.Citations = append(batch.Citations, Citation{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}
	return batch
}
