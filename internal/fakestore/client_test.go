package fakestore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fakestore-etl/internal/config"
	apperrors "fakestore-etl/pkg/errors"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:          baseURL,
			UsersEndpoint:    "/users",
			ProductsEndpoint: "/products",
			CartsEndpoint:    "/carts",
			Timeout:          5 * time.Second,
		},
	}
}

func TestFetchUsersDecodesNestedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"email":"a@b.com","username":"ab","password":"p","phone":"555",
			"name":{"firstname":"A","lastname":"B"},
			"address":{"city":"X","street":"Y","number":1,"zipcode":"00000"}}]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	users, err := client.FetchUsers(context.Background())
	if err != nil {
		t.Fatalf("FetchUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(users))
	}
	u := users[0]
	if u.ID != 1 || u.Name == nil || u.Name.Firstname != "A" || u.Address == nil || u.Address.Number != 1 {
		t.Errorf("Unexpected decoded user: %+v", u)
	}
}

func TestFetchCartsDecodesProductLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"userId":1,"date":"2020-03-02T00:00:00.000Z",
			"products":[{"productId":1,"quantity":4},{"productId":2,"quantity":1}]}]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	carts, err := client.FetchCarts(context.Background())
	if err != nil {
		t.Fatalf("FetchCarts failed: %v", err)
	}
	if len(carts) != 1 || len(carts[0].Products) != 2 {
		t.Fatalf("Unexpected decoded carts: %+v", carts)
	}
	if carts[0].Products[0].ProductID != 1 || carts[0].Products[0].Quantity != 4 {
		t.Errorf("Unexpected first product line: %+v", carts[0].Products[0])
	}
}

func TestFetchProductsNon2xxIsExtractError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.FetchProducts(context.Background())

	var eerr apperrors.ExtractError
	if !errors.As(err, &eerr) {
		t.Fatalf("Expected ExtractError, got %v", err)
	}
	if eerr.Endpoint != server.URL+"/products" {
		t.Errorf("Expected endpoint in error, got %q", eerr.Endpoint)
	}
}

func TestFetchUsersConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(testConfig(url))
	_, err := client.FetchUsers(context.Background())

	var eerr apperrors.ExtractError
	if !errors.As(err, &eerr) {
		t.Fatalf("Expected ExtractError on connection failure, got %v", err)
	}
	if eerr.Unwrap() == nil {
		t.Error("ExtractError must carry the underlying cause")
	}
}

func TestFetchUsersMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.FetchUsers(context.Background())

	var eerr apperrors.ExtractError
	if !errors.As(err, &eerr) {
		t.Fatalf("Expected ExtractError on decode failure, got %v", err)
	}
}
