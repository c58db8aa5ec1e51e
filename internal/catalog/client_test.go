package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/api/v1/products/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/v1/products" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("shop.local/products")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "shop.local" {
		t.Fatalf("scheme/host = %q/%q, want https/shop.local", u.Scheme, u.Host)
	}
}

func TestClient_FetchAllDecodesProducts(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotRequestID, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotMethod = r.Method
		if r.URL.Path != "/api/v1/products" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id": 1, "title": "Red Shirt", "price": 10, "description": "cotton",
			 "category": {"id": 2, "name": "Clothes"}, "images": ["https://img/1.png"]},
			{"id": 2, "title": "Mug", "price": 4.5, "description": "ceramic", "images": []}
		]`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v1/products")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("FetchAll returned %d products, want 2", len(products))
	}
	if products[0].CategoryName() != "Clothes" || products[0].PriceLabel() != "$10" {
		t.Fatalf("first product = %#v, want Clothes/$10", products[0])
	}
	if products[1].CategoryName() != NoCategory || products[1].Thumbnail() != PlaceholderImage {
		t.Fatalf("second product fallbacks = %q/%q", products[1].CategoryName(), products[1].Thumbnail())
	}
	if products[1].PriceLabel() != "$4.5" {
		t.Fatalf("PriceLabel = %q, want $4.5", products[1].PriceLabel())
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("method = %q, want GET", gotMethod)
	}
	if !strings.HasPrefix(gotUserAgent, "shopkeep/") {
		t.Fatalf("User-Agent = %q, want shopkeep/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_CreatePostsJSONBody(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/products" {
			http.Error(w, "unexpected", http.StatusMethodNotAllowed)
			return
		}
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 77, "title": "Lamp", "price": 30, "description": "bright", "images": ["https://img/l.png"]}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/products")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	created, err := c.Create(context.Background(), NewProductInput{
		Title:       " Lamp ",
		Price:       30,
		Description: "bright",
		CategoryID:  1,
		Images:      []string{"https://img/l.png"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 77 {
		t.Fatalf("created id = %d, want 77", created.ID)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["title"] != "Lamp" || gotBody["price"] != float64(30) || gotBody["categoryId"] != float64(1) {
		t.Fatalf("body = %v, want title/price/categoryId encoded", gotBody)
	}
	if images, ok := gotBody["images"].([]any); !ok || len(images) != 1 {
		t.Fatalf("body images = %v, want one entry", gotBody["images"])
	}
}

func TestClient_UpdateSendsOnlyPatchedFields(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id": 5, "title": "Renamed", "price": 12, "description": "d", "images": []}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/products")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	title := "Renamed"
	updated, err := c.Update(context.Background(), 5, ProductPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("updated title = %q, want Renamed", updated.Title)
	}
	if gotPath != "/products/5" {
		t.Fatalf("path = %q, want /products/5", gotPath)
	}
	if len(gotBody) != 1 || gotBody["title"] != "Renamed" {
		t.Fatalf("body = %v, want only title", gotBody)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.Error(w, "nope", http.StatusInternalServerError)
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message": ["price must be a positive number"], "error": "Bad Request", "statusCode": 400}`)
		case http.MethodPut:
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, "{not-json")
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchAll(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) || netErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("FetchAll error = %v, want NetworkError status 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchAll error = %q, want it to mention status 500", err.Error())
	}

	_, err = c.Create(context.Background(), NewProductInput{
		Title: "x", Price: 1, Description: "d", CategoryID: 1, Images: []string{"https://img/x.png"},
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Create error = %v, want ValidationError", err)
	}
	if len(valErr.Messages) != 1 || valErr.Messages[0] != "price must be a positive number" {
		t.Fatalf("ValidationError messages = %v", valErr.Messages)
	}

	title := "t"
	_, err = c.Update(context.Background(), 1, ProductPatch{Title: &title})
	if !IsNetworkError(err) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Update error = %v, want decode NetworkError", err)
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c, err := NewClient(base)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchAll(context.Background())
	if !IsNetworkError(err) {
		t.Fatalf("FetchAll error = %v, want NetworkError", err)
	}
}

func TestClient_LocalValidationSkipsRoundTrip(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Create(context.Background(), NewProductInput{Title: "  ", Price: 1, Description: "d", CategoryID: 0})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Create error = %v, want ValidationError", err)
	}
	if valErr.StatusCode != 0 {
		t.Fatalf("StatusCode = %d, want 0 for local rejection", valErr.StatusCode)
	}
	if len(valErr.Messages) < 3 {
		t.Fatalf("Messages = %v, want title, categoryid and images reported", valErr.Messages)
	}

	if _, err := c.Update(context.Background(), 3, ProductPatch{}); !IsValidationError(err) {
		t.Fatalf("Update(empty) error = %v, want ValidationError", err)
	}
	if _, err := c.Update(context.Background(), 0, ProductPatch{}); !IsValidationError(err) {
		t.Fatalf("Update(id 0) error = %v, want ValidationError", err)
	}
	if calls != 0 {
		t.Fatalf("server saw %d calls, want 0", calls)
	}
}
