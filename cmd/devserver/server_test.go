package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T, succeedAfter int, outcome string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := newBackend(slog.New(slog.NewTextHandler(io.Discard, nil)), succeedAfter, outcome)
	return newRouter(b)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return w.Code, out
}

func createTestOrder(t *testing.T, r *gin.Engine) (orderID, reference string) {
	t.Helper()
	code, resp := doJSON(t, r, http.MethodPost, "/api/public/orders/", map[string]any{
		"full_name": "Akello Grace",
		"phone":     "0777123456",
		"items":     []map[string]any{{"product": "3", "qty": 1}},
	})
	if code != http.StatusCreated {
		t.Fatalf("create order: status %d (%v)", code, resp)
	}
	id, ok := resp["id"].(float64)
	if !ok {
		t.Fatalf("order id is not a number: %v", resp["id"])
	}
	return strconv.Itoa(int(id)), resp["reference"].(string)
}

func initiateTestPayment(t *testing.T, r *gin.Engine, orderID string) string {
	t.Helper()
	code, resp := doJSON(t, r, http.MethodPost, "/api/public/momo/initiate/", map[string]any{
		"order_id":     orderID,
		"payer_msisdn": "256777123456",
	})
	if code != http.StatusOK {
		t.Fatalf("initiate: status %d (%v)", code, resp)
	}
	return resp["reference_id"].(string)
}

func TestCreateOrderComputesTotal(t *testing.T) {
	r := testRouter(t, 1, "success")

	code, resp := doJSON(t, r, http.MethodPost, "/api/public/orders/", map[string]any{
		"full_name": "Akello Grace",
		"phone":     "0777123456",
		"items": []map[string]any{
			{"product": "1", "qty": 2},
			{"product": "3", "qty": 1},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("status %d (%v)", code, resp)
	}
	if resp["total_amount"].(float64) != 2*8000+15000 {
		t.Fatalf("total: %v", resp["total_amount"])
	}
	if len(resp["reference"].(string)) != 10 {
		t.Fatalf("reference: %v", resp["reference"])
	}
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	r := testRouter(t, 1, "success")

	code, _ := doJSON(t, r, http.MethodPost, "/api/public/orders/", map[string]any{
		"full_name": "Akello Grace",
		"phone":     "0777123456",
		"items":     []map[string]any{{"product": "999", "qty": 1}},
	})
	if code != http.StatusNotFound {
		t.Fatalf("status %d", code)
	}
}

func TestStatusSucceedsAfterConfiguredPolls(t *testing.T) {
	r := testRouter(t, 3, "success")
	orderID, _ := createTestOrder(t, r)
	ref := initiateTestPayment(t, r, orderID)

	for poll := 1; poll <= 2; poll++ {
		code, resp := doJSON(t, r, http.MethodGet, "/api/public/momo/status/"+ref+"/", nil)
		if code != http.StatusOK {
			t.Fatalf("poll %d: status %d", poll, code)
		}
		if resp["order_status"] != "CREATED" || resp["momo_status"] != "PENDING" {
			t.Fatalf("poll %d: %v", poll, resp)
		}
	}

	code, resp := doJSON(t, r, http.MethodGet, "/api/public/momo/status/"+ref+"/", nil)
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp["order_status"] != "PAID" || resp["momo_status"] != "SUCCESSFUL" {
		t.Fatalf("final poll: %v", resp)
	}
	links := resp["download_links"].([]any)
	if len(links) != 1 {
		t.Fatalf("expected one download link for the digital item, got %d", len(links))
	}
}

func TestStatusFailOutcome(t *testing.T) {
	r := testRouter(t, 1, "fail")
	orderID, _ := createTestOrder(t, r)
	ref := initiateTestPayment(t, r, orderID)

	_, resp := doJSON(t, r, http.MethodGet, "/api/public/momo/status/"+ref+"/", nil)
	if resp["momo_status"] != "FAILED" || resp["order_status"] != "CREATED" {
		t.Fatalf("got %v", resp)
	}
}

func TestStatusHangOutcomeStaysPending(t *testing.T) {
	r := testRouter(t, 1, "hang")
	orderID, _ := createTestOrder(t, r)
	ref := initiateTestPayment(t, r, orderID)

	for poll := 0; poll < 5; poll++ {
		_, resp := doJSON(t, r, http.MethodGet, "/api/public/momo/status/"+ref+"/", nil)
		if resp["momo_status"] != "PENDING" {
			t.Fatalf("poll %d: %v", poll, resp)
		}
	}
}

func TestStatusUnknownReference(t *testing.T) {
	r := testRouter(t, 1, "success")

	code, _ := doJSON(t, r, http.MethodGet, "/api/public/momo/status/nope/", nil)
	if code != http.StatusNotFound {
		t.Fatalf("status %d", code)
	}
}

func TestBootstrapShape(t *testing.T) {
	r := testRouter(t, 1, "success")

	code, resp := doJSON(t, r, http.MethodGet, "/api/public/bootstrap/", nil)
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	settings := resp["settings"].(map[string]any)
	if settings["store_name"] == "" {
		t.Fatal("missing store_name")
	}
}
