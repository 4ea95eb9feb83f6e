package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoadDecodesBootstrapEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public/bootstrap/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"settings":{"store_name":"Neeste Farm Store","tagline":"Farm gear that works","primary_color":"#1a7f37","whatsapp_number":"256700000000"}}`))
	}))
	defer srv.Close()

	site, err := NewLoader(srv.URL, time.Second).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if site.StoreName != "Neeste Farm Store" {
		t.Errorf("store name = %q", site.StoreName)
	}
	if site.PrimaryColor != "#1a7f37" {
		t.Errorf("primary color = %q", site.PrimaryColor)
	}
}

func TestLoadReportsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewLoader(srv.URL, time.Second).Load(context.Background()); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
