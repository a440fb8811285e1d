package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"stock-order-service/internal/clients"
	"stock-order-service/internal/models"
)

// ErrPartialFetch flags a paginated read that aborted before cursor
// exhaustion. Whatever was accumulated up to the failing page is still
// returned; the caller decides whether an incomplete snapshot is usable.
var ErrPartialFetch = errors.New("partial fetch: collection may be incomplete")

// ErrCircuitOpen is returned when the circuit breaker is rejecting requests
var ErrCircuitOpen = errors.New("catalog API circuit breaker is open")

// Options configures a catalog API client
type Options struct {
	// BaseURL is the versioned API root, e.g.
	// https://{prefix}.retail.lightspeed.app/api/2.0
	BaseURL string
	// Token is the bearer token for all requests
	Token string
	// Timeout bounds each HTTP request
	Timeout time.Duration
	// RateLimit is the request budget in requests per second
	RateLimit int
	// Retry overrides the read-retry policy; nil uses defaults
	Retry *clients.RetryConfig
	// Logger receives progress and warning output; nil uses the standard
	// logrus logger
	Logger *logrus.Logger
}

// Client is an HTTP client for the POS catalog API. Reads are paginated with
// a version cursor and retried with backoff; writes get a single attempt and
// rely on look-before-create for idempotency.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	rateLimiter *rate.Limiter
	retrier     *clients.Retrier
	breaker     *clients.CircuitBreaker
	log         *logrus.Logger
}

// NewClient creates a new catalog API client
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	rps := opts.RateLimit
	if rps <= 0 {
		rps = 5
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     opts.BaseURL,
		token:       opts.Token,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 1),
		retrier:     clients.NewRetrier(opts.Retry),
		breaker:     clients.NewCircuitBreaker(5, 30*time.Second),
		log:         log,
	}
}

// page is the common list envelope: a batch of records plus the version
// cursor for the next page.
type page struct {
	Data    []json.RawMessage `json:"data"`
	Version struct {
		Min *int64 `json:"min"`
		Max *int64 `json:"max"`
	} `json:"version"`
}

// createEnvelope is the common create-response envelope
type createEnvelope struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// fetchAll walks a cursor-paginated collection, invoking onRecords for each
// non-empty batch. Termination: empty batch, or no max cursor in the response.
// A non-success page aborts the walk and returns ErrPartialFetch; records from
// earlier pages have already been delivered to onRecords.
func (c *Client) fetchAll(ctx context.Context, path string, onRecords func(records []json.RawMessage) error) error {
	after := ""
	for {
		params := url.Values{}
		if after != "" {
			params.Set("after", after)
		}

		body, status, err := c.get(ctx, path, params)
		if err != nil {
			c.log.WithFields(logrus.Fields{"path": path, "error": err}).Warn("Catalog read failed, returning partial results")
			return fmt.Errorf("GET %s: %v: %w", path, err, ErrPartialFetch)
		}
		if status < 200 || status >= 300 {
			c.log.WithFields(logrus.Fields{"path": path, "status": status}).Warn("Catalog read failed, returning partial results")
			return fmt.Errorf("GET %s: status %d: %w", path, status, ErrPartialFetch)
		}

		var pg page
		if err := json.Unmarshal(body, &pg); err != nil {
			return fmt.Errorf("GET %s: decoding page: %w", path, err)
		}
		if len(pg.Data) == 0 {
			return nil
		}
		if err := onRecords(pg.Data); err != nil {
			return err
		}
		if pg.Version.Max == nil {
			return nil
		}
		after = strconv.FormatInt(*pg.Version.Max, 10)
	}
}

// FetchAllRecords retrieves a full collection as raw header-keyed records.
// Used by the snapshot export surface; typed callers use the Fetch* wrappers.
func (c *Client) FetchAllRecords(ctx context.Context, resource string) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0)
	err := c.fetchAll(ctx, "/"+resource, func(records []json.RawMessage) error {
		for _, raw := range records {
			var rec map[string]interface{}
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("decoding %s record: %w", resource, err)
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

// FetchAllProducts retrieves the full product catalog
func (c *Client) FetchAllProducts(ctx context.Context) ([]models.CatalogProduct, error) {
	out := make([]models.CatalogProduct, 0)
	err := c.fetchAll(ctx, "/products", func(records []json.RawMessage) error {
		return appendRecords(&out, records, "product")
	})
	return out, err
}

// FetchAllInventory retrieves all inventory levels
func (c *Client) FetchAllInventory(ctx context.Context) ([]models.InventoryRecord, error) {
	out := make([]models.InventoryRecord, 0)
	err := c.fetchAll(ctx, "/inventory", func(records []json.RawMessage) error {
		return appendRecords(&out, records, "inventory")
	})
	return out, err
}

// FetchAllSuppliers retrieves all suppliers
func (c *Client) FetchAllSuppliers(ctx context.Context) ([]models.Supplier, error) {
	out := make([]models.Supplier, 0)
	err := c.fetchAll(ctx, "/suppliers", func(records []json.RawMessage) error {
		return appendRecords(&out, records, "supplier")
	})
	return out, err
}

// FetchAllBrands retrieves all brands
func (c *Client) FetchAllBrands(ctx context.Context) ([]models.Brand, error) {
	out := make([]models.Brand, 0)
	err := c.fetchAll(ctx, "/brands", func(records []json.RawMessage) error {
		return appendRecords(&out, records, "brand")
	})
	return out, err
}

func appendRecords[T any](out *[]T, records []json.RawMessage, kind string) error {
	for _, raw := range records {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decoding %s record: %w", kind, err)
		}
		*out = append(*out, rec)
	}
	return nil
}

// CreateSupplier creates a supplier and returns its assigned id. Description
// defaults to the supplier name when empty.
func (c *Client) CreateSupplier(ctx context.Context, name, description string) (string, error) {
	if description == "" {
		description = name
	}
	payload := map[string]string{"name": name, "description": description}

	var env createEnvelope
	if err := c.post(ctx, "/suppliers", payload, &env); err != nil {
		return "", fmt.Errorf("creating supplier %q: %w", name, err)
	}
	c.log.WithField("supplier", name).Info("Supplier created")
	return env.Data.ID, nil
}

// CreateBrand creates a brand and returns its assigned id
func (c *Client) CreateBrand(ctx context.Context, name string) (string, error) {
	payload := map[string]string{"name": name}

	var env createEnvelope
	if err := c.post(ctx, "/brands", payload, &env); err != nil {
		return "", fmt.Errorf("creating brand %q: %w", name, err)
	}
	c.log.WithField("brand", name).Info("Brand created")
	return env.Data.ID, nil
}

// ProductCreate is the payload for creating a catalog product. The inventory
// stub registers the product at an outlet with zero stock on hand; the stock
// order carries the actual quantities.
type ProductCreate struct {
	Name              string            `json:"name"`
	SupplierCode      string            `json:"supplier_code"`
	SupplyPrice       float64           `json:"supply_price"`
	PriceExcludingTax float64           `json:"price_excluding_tax"`
	CustomSKU         bool              `json:"customSku"`
	Type              string            `json:"type"`
	SupplierID        string            `json:"supplier_id"`
	BrandID           string            `json:"brand_id"`
	Inventory         []InventoryCreate `json:"inventory"`
}

// InventoryCreate is the inventory stub embedded in a product creation payload
type InventoryCreate struct {
	CurrentAmount int    `json:"current_amount"`
	OutletID      string `json:"outlet_id"`
}

// CreateProduct creates a catalog product and returns its assigned id
func (c *Client) CreateProduct(ctx context.Context, payload ProductCreate) (string, error) {
	var env createEnvelope
	if err := c.post(ctx, "/products", payload, &env); err != nil {
		return "", fmt.Errorf("creating product %q (SKU %s): %w", payload.Name, payload.SupplierCode, err)
	}
	c.log.WithFields(logrus.Fields{"product": payload.Name, "sku": payload.SupplierCode}).Info("Product created")
	return env.Data.ID, nil
}

// StockOrderCreate is the payload for creating a stock-order shell
type StockOrderCreate struct {
	Name       string `json:"name"`
	OutletID   string `json:"outlet_id"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	SupplierID string `json:"supplier_id"`
}

// CreateStockOrder creates a stock-order (consignment) shell
func (c *Client) CreateStockOrder(ctx context.Context, payload StockOrderCreate) (*models.StockOrder, error) {
	var env struct {
		Data models.StockOrder `json:"data"`
	}
	if err := c.post(ctx, "/consignments", payload, &env); err != nil {
		return nil, fmt.Errorf("creating stock order %q: %w", payload.Name, err)
	}
	c.log.WithField("stockOrderId", env.Data.ID).Info("Stock order shell created")
	return &env.Data, nil
}

// AddStockOrderLine posts a single line item to an existing stock order
func (c *Client) AddStockOrderLine(ctx context.Context, stockOrderID string, line models.StockOrderLine) error {
	path := fmt.Sprintf("/consignments/%s/products", stockOrderID)
	if err := c.post(ctx, path, line, nil); err != nil {
		return fmt.Errorf("adding product %s to stock order %s: %w", line.ProductID, stockOrderID, err)
	}
	return nil
}

// get issues an idempotent GET with rate limiting, retry and circuit breaking.
// Non-2xx statuses are returned to the caller rather than converted to errors
// so fetchAll can classify them as partial-fetch conditions.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	if !c.breaker.Allow() {
		return nil, 0, ErrCircuitOpen
	}

	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	resp, err := c.retrier.DoIdempotent(ctx, func(ctx context.Context) (*http.Response, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)
		return c.httpClient.Do(req)
	})
	if err != nil {
		c.breaker.RecordFailure()
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.breaker.RecordSuccess()
	} else {
		c.breaker.RecordFailure()
	}
	return body, resp.StatusCode, nil
}

// post issues a single-attempt POST. The response body is decoded into out
// when it is non-nil.
func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	if !c.breaker.Allow() {
		return ErrCircuitOpen
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.breaker.RecordFailure()
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	c.breaker.RecordSuccess()

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
