package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public/momo/status/ref-123/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"order_id": 41,
			"order_status": "PAID",
			"momo_status": "SUCCESSFUL",
			"download_links": [{"product": "Poultry Guide", "url": "https://shop.example.com/api/download/tok/"}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	st, err := c.Status(context.Background(), "ref-123")
	if err != nil {
		t.Fatal(err)
	}

	if st.OrderStatus != "PAID" || st.MomoStatus != "SUCCESSFUL" {
		t.Fatalf("status: %+v", st)
	}
	if len(st.DownloadLinks) != 1 || st.DownloadLinks[0].Product != "Poultry Guide" {
		t.Fatalf("download links: %+v", st.DownloadLinks)
	}
}

func TestStatusServerErrorIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.Status(context.Background(), "ref-123"); err == nil {
		t.Fatal("expected error on 5xx")
	}
}

func TestStatusEmptyLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id": 41, "order_status": "CREATED", "momo_status": "PENDING", "download_links": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	st, err := c.Status(context.Background(), "ref-123")
	if err != nil {
		t.Fatal(err)
	}
	if st.OrderStatus != "CREATED" || len(st.DownloadLinks) != 0 {
		t.Fatalf("status: %+v", st)
	}
}
