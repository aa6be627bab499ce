// Package fakestore is the HTTP client over the store API's three GET
// endpoints. Every fetch is a single synchronous attempt; connection
// failures and non-2xx responses surface as ExtractError and retries are
// left to the scheduler.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"fakestore-etl/internal/config"
	"fakestore-etl/internal/logger"
	"fakestore-etl/internal/model"
	apperrors "fakestore-etl/pkg/errors"
)

type Client struct {
	baseURL    string
	users      string
	products   string
	carts      string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:  cfg.API.BaseURL,
		users:    cfg.API.UsersEndpoint,
		products: cfg.API.ProductsEndpoint,
		carts:    cfg.API.CartsEndpoint,
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		log: logger.Get(),
	}
}

func (c *Client) FetchUsers(ctx context.Context) ([]model.RawUser, error) {
	var users []model.RawUser
	if err := c.get(ctx, c.users, &users); err != nil {
		return nil, err
	}
	c.log.Debug().Int("count", len(users)).Msg("Received users from store API")
	return users, nil
}

func (c *Client) FetchProducts(ctx context.Context) ([]model.RawProduct, error) {
	var products []model.RawProduct
	if err := c.get(ctx, c.products, &products); err != nil {
		return nil, err
	}
	c.log.Debug().Int("count", len(products)).Msg("Received products from store API")
	return products, nil
}

func (c *Client) FetchCarts(ctx context.Context) ([]model.RawCart, error) {
	var carts []model.RawCart
	if err := c.get(ctx, c.carts, &carts); err != nil {
		return nil, err
	}
	c.log.Debug().Int("count", len(carts)).Msg("Received carts from store API")
	return carts, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.ExtractError{Endpoint: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.ExtractError{Endpoint: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return apperrors.ExtractError{
			Endpoint: url,
			Err:      fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.ExtractError{
			Endpoint: url,
			Err:      fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return nil
}
