package inventory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL accepted a URL without host")
	}
}

func TestClient_RoutesMethodsAndBodies(t *testing.T) {
	t.Parallel()

	type seen struct {
		method, path, body, requestID, userAgent string
	}
	var got []seen

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = append(got, seen{
			method:    r.Method,
			path:      r.URL.EscapedPath(),
			body:      strings.TrimSpace(string(body)),
			requestID: r.Header.Get(requestIDHeader),
			userAgent: r.Header.Get("User-Agent"),
		})
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/products":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Bolt","quantity":12,"price":0.25},{"id":"sku-9","name":"Nut","quantity":0,"price":1}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/stats":
			_, _ = w.Write([]byte(`{"totalProducts":2,"totalValue":3.0,"lowStockCount":0}`))
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":3,"name":"Widget","quantity":5,"price":2.5}`))
		case r.Method == http.MethodPut:
			_, _ = w.Write([]byte(`{"id":"a/b","name":"Widget","quantity":6,"price":2.5}`))
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{"message":"Product deleted successfully"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(products) != 2 || products[0].ID != NumericID(1) || products[1].ID != StringID("sku-9") {
		t.Fatalf("ListProducts = %#v, want ids 1 and sku-9", products)
	}
	if !products[0].Price.Equal(decimal.RequireFromString("0.25")) {
		t.Fatalf("price = %s, want 0.25", products[0].Price)
	}

	stats, err := c.FetchStats(ctx)
	if err != nil {
		t.Fatalf("FetchStats returned error: %v", err)
	}
	if stats.TotalProducts != 2 || !stats.TotalValue.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("FetchStats = %#v", stats)
	}

	in := ProductInput{Name: "Widget", Quantity: 5, Price: decimal.RequireFromString("2.5")}
	created, err := c.CreateProduct(ctx, in)
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if created.ID != NumericID(3) {
		t.Fatalf("CreateProduct id = %v, want 3", created.ID)
	}

	if _, err := c.UpdateProduct(ctx, StringID("a/b"), ProductInput{Name: "Widget", Quantity: 6, Price: in.Price}); err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}
	if err := c.DeleteProduct(ctx, NumericID(3)); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}

	want := []struct{ method, path, body string }{
		{http.MethodGet, "/api/products", ""},
		{http.MethodGet, "/api/stats", ""},
		{http.MethodPost, "/api/products", `{"name":"Widget","quantity":5,"price":2.5}`},
		{http.MethodPut, "/api/products/a%2Fb", `{"id":"a/b","name":"Widget","quantity":6,"price":2.5}`},
		{http.MethodDelete, "/api/products/3", ""},
	}
	if len(got) != len(want) {
		t.Fatalf("server saw %d requests, want %d", len(got), len(want))
	}
	ids := map[string]bool{}
	for i, w := range want {
		if got[i].method != w.method || got[i].path != w.path || got[i].body != w.body {
			t.Fatalf("request %d = %s %s %s, want %s %s %s", i, got[i].method, got[i].path, got[i].body, w.method, w.path, w.body)
		}
		if _, err := uuid.Parse(got[i].requestID); err != nil {
			t.Fatalf("request %d X-Request-ID = %q, want uuid", i, got[i].requestID)
		}
		ids[got[i].requestID] = true
		if !strings.HasPrefix(got[i].userAgent, "tally/") {
			t.Fatalf("User-Agent = %q, want tally/*", got[i].userAgent)
		}
	}
	if len(ids) != len(want) {
		t.Fatalf("request ids not unique: %v", ids)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/stats":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/products":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchStats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchStats error = %v, want decode response error", err)
	}

	_, err = c.ListProducts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("ListProducts error = %v, want status 500 error", err)
	}

	err = c.DeleteProduct(context.Background(), NumericID(7))
	if err == nil || !strings.Contains(err.Error(), "returned status 404") {
		t.Fatalf("DeleteProduct error = %v, want status 404 error", err)
	}
}

func TestClient_NonSuccessStatusIsAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/products":
			w.WriteHeader(http.StatusMultipleChoices)
		case "/api/stats":
			w.Header().Set("Location", "/elsewhere")
			w.WriteHeader(http.StatusFound)
		}
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	noFollow := &http.Client{
		Timeout: time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	c, err := NewClient(server.URL+"/api", WithHTTPClient(noFollow))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.ListProducts(context.Background()); err == nil || !strings.Contains(err.Error(), "returned status 300") {
		t.Fatalf("ListProducts error = %v, want status 300 error", err)
	}
	if _, err := c.FetchStats(context.Background()); err == nil || !strings.Contains(err.Error(), "returned status 302") {
		t.Fatalf("FetchStats error = %v, want status 302 error", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ListProducts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("ListProducts error = %v, want execute request error", err)
	}
}

func TestClient_RequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.UpdateProduct(context.Background(), ID{}, ProductInput{}); err == nil {
		t.Fatalf("UpdateProduct returned nil error, want error")
	}
	if err := c.DeleteProduct(context.Background(), ID{}); err == nil {
		t.Fatalf("DeleteProduct returned nil error, want error")
	}
}

func TestID_RoundTripsJSONForm(t *testing.T) {
	cases := []struct {
		in   string
		want ID
	}{
		{`42`, NumericID(42)},
		{`"abc"`, StringID("abc")},
		{`"42"`, StringID("42")},
	}
	for _, tc := range cases {
		var id ID
		if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tc.in, err)
		}
		if id != tc.want {
			t.Fatalf("Unmarshal(%s) = %#v, want %#v", tc.in, id, tc.want)
		}
		out, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("Marshal returned error: %v", err)
		}
		if string(out) != tc.in {
			t.Fatalf("Marshal = %s, want %s", out, tc.in)
		}
	}
}
