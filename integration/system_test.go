//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	neturl "net/url"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

type pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func TestSystem_E2E_WithDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	password := os.Getenv("E2E_ADMIN_PASSWORD")
	if password == "" {
		t.Skip("E2E_ADMIN_PASSWORD not set")
	}

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/admin/login", map[string]any{
		"password": password,
	}, &loginResp, 200)
	if loginResp.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	token := loginResp.AccessToken

	name := fmt.Sprintf("Shop %d-%d", time.Now().Unix(), rand.Intn(100000))
	doJSONAuth(t, http.MethodPut, baseURL+"/api/admin/settings", token, map[string]any{
		"key":   "business_name",
		"value": name,
	}, nil, 200)

	doJSONAuth(t, http.MethodPut, baseURL+"/api/admin/settings", token, map[string]any{
		"key":   "business_name",
		"value": "   ",
	}, nil, 400)

	assertSetting(t, token, "business_name", name)

	brand := fmt.Sprintf("E2E Brand %d", rand.Intn(1_000_000))
	doJSONAuth(t, http.MethodPost, baseURL+"/api/admin/brands", token, map[string]any{
		"name": brand,
	}, nil, 201)

	var brands []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/api/brands", nil, &brands, 200)
	found := false
	for _, b := range brands {
		if b["name"] == brand {
			found = true
		}
	}
	if !found {
		t.Fatalf("brand %q not listed", brand)
	}

	var view struct {
		Total int `json:"total"`
		Shown int `json:"shown"`
	}
	doJSON(t, http.MethodGet, baseURL+"/api/products?brand="+neturl.QueryEscape(brand), nil, &view, 200)
	if view.Shown != 0 {
		t.Fatalf("new brand has no products, shown=%d", view.Shown)
	}

	if os.Getenv("E2E_RESTART") == "1" {
		restartContainer(t, ctx, "storefront")
		waitReady(t, ctx, baseURL+"/readyz")
		doJSON(t, http.MethodPost, baseURL+"/api/admin/login", map[string]any{
			"password": password,
		}, &loginResp, 200)
		assertSetting(t, loginResp.AccessToken, "business_name", name)
	}
}

func assertSetting(t *testing.T, token, key, want string) {
	t.Helper()

	var pairs []pair
	doJSONAuth(t, http.MethodGet, baseURL+"/api/admin/settings", token, nil, &pairs, 200)
	for _, p := range pairs {
		if p.Key == key {
			if p.Value != want {
				t.Fatalf("%s=%q want %q", key, p.Value, want)
			}
			return
		}
	}
	t.Fatalf("%s missing from %v", key, pairs)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()
	doJSONAuth(t, method, url, "", body, out, want)
}

func doJSONAuth(t *testing.T, method, url, token string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
