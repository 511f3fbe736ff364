package shopapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"flower-shop-bot/internal/config"
	"flower-shop-bot/internal/domain"
	"flower-shop-bot/internal/domain/model"
	"flower-shop-bot/internal/domain/ports/adapter"
	"flower-shop-bot/internal/infra/logging"
	"flower-shop-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ adapter.ShopAPI = (*Client)(nil)

const (
	endpointProducts = "products"
	endpointOrders   = "orders"
)

// Client talks to the shop backend over plain GET requests.
// There are no retries; cancellation comes from the caller's context.
type Client struct {
	productsURL string
	ordersURL   string
	token       string
	client      *http.Client
	log         *zerolog.Logger
}

// NewClient validates the endpoint URLs. A nil httpClient means a client
// with library defaults.
func NewClient(cfg config.APIConfig, httpClient *http.Client, logger *zerolog.Logger) (*Client, error) {
	for name, raw := range map[string]string{"products_url": cfg.ProductsURL, "orders_url": cfg.OrdersURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid api.%s %q: %w", name, raw, domain.ErrInvalidArgument)
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		productsURL: cfg.ProductsURL,
		ordersURL:   cfg.OrdersURL,
		token:       cfg.Token,
		client:      httpClient,
		log:         logger,
	}, nil
}

// ListProducts fetches the whole catalog. Any status but 200 is KindStatus.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.get(ctx, request{endpoint: endpointProducts, base: c.productsURL}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CheckProducts issues the catalog request and discards the body.
func (c *Client) CheckProducts(ctx context.Context) error {
	return c.get(ctx, request{endpoint: endpointProducts, base: c.productsURL}, nil)
}

// ListOrders fetches the orders of userID. A 404 is KindNotFound.
func (c *Client) ListOrders(ctx context.Context, userID int64, status string) ([]model.Order, error) {
	q := []queryParam{{"user", strconv.FormatInt(userID, 10)}}
	if status != "" {
		q = append(q, queryParam{"status", status})
	}
	var orders []model.Order
	req := request{endpoint: endpointOrders, base: c.ordersURL, params: q, authorized: true, notFoundIsEmpty: true}
	if err := c.get(ctx, req, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type queryParam struct{ key, value string }

type request struct {
	endpoint        string
	base            string
	params          []queryParam
	authorized      bool // send the Token header
	notFoundIsEmpty bool // 404 means "no matches"
}

// encodeQuery keeps the parameter order stable (url.Values sorts by key).
func encodeQuery(base string, params []queryParam) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return u.String(), nil
	}
	raw := u.RawQuery
	for _, p := range params {
		if raw != "" {
			raw += "&"
		}
		raw += url.QueryEscape(p.key) + "=" + url.QueryEscape(p.value)
	}
	u.RawQuery = raw
	return u.String(), nil
}

// get performs one request and decodes a 200 body into target.
// A nil target skips decoding.
func (c *Client) get(ctx context.Context, r request, target any) (err error) {
	endpoint := r.endpoint
	l := logging.With(ctx, c.log)
	defer logging.TraceDuration(l, "shopapi."+endpoint)()

	start := time.Now()
	outcome := "ok"
	defer func() {
		if err != nil {
			outcome = domain.AsFetchError(err).Kind.String()
		}
		metrics.ObserveShopAPI(endpoint, outcome, time.Since(start))
	}()

	reqURL, err := encodeQuery(r.base, r.params)
	if err != nil {
		return &domain.FetchError{Kind: domain.KindUnexpected, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &domain.FetchError{Kind: domain.KindUnexpected, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.authorized {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.FetchError{Kind: domain.KindUnexpected, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound && r.notFoundIsEmpty:
		return &domain.FetchError{Kind: domain.KindNotFound, StatusCode: resp.StatusCode}
	default:
		return &domain.FetchError{Kind: domain.KindStatus, StatusCode: resp.StatusCode}
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty response body: %w", err)
		}
		return &domain.FetchError{Kind: domain.KindUnexpected, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode %s: %w", endpoint, err)}
	}
	l.Debug().Str("endpoint", endpoint).Msg("shop api response decoded")
	return nil
}
