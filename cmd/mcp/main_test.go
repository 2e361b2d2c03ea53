package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestAPIClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/predict/AAPL" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("period") != "6mo" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"symbol":"AAPL"}`))
	}))
	defer srv.Close()

	api := newAPIClient(srv.URL + "/")
	query := url.Values{}
	query.Set("period", "6mo")

	body, err := api.get(context.Background(), "/api/predict/AAPL", query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "AAPL") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAPIClientGetErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no bar data for XXXX"}`))
	}))
	defer srv.Close()

	api := newAPIClient(srv.URL)
	_, err := api.get(context.Background(), "/api/predict/XXXX", nil)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in error, got: %v", err)
	}
}

func TestRegisterTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	registerTools(server, newAPIClient("http://localhost:8080"))
}
