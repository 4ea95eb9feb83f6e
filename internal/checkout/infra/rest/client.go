package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neeste/storefront/internal/checkout/app"
)

// Client speaks the storefront backend's public JSON API. It implements
// the checkout service's OrderCreator, PaymentInitiator and CatalogReader
// ports.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

type orderItemPayload struct {
	Product string `json:"product"`
	Qty     int32  `json:"qty"`
}

type createOrderPayload struct {
	FullName string             `json:"full_name"`
	Phone    string             `json:"phone"`
	Email    string             `json:"email,omitempty"`
	Address  string             `json:"address,omitempty"`
	Items    []orderItemPayload `json:"items"`
}

type createOrderResponse struct {
	ID        json.Number `json:"id"`
	Reference string      `json:"reference"`
}

func (c *Client) CreateOrder(ctx context.Context, req app.CreateOrderRequest) (app.CreatedOrder, error) {
	payload := createOrderPayload{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	}
	for _, it := range req.Items {
		payload.Items = append(payload.Items, orderItemPayload{Product: it.ProductID, Qty: it.Quantity})
	}

	var resp createOrderResponse
	if err := c.post(ctx, "/public/orders/", payload, &resp); err != nil {
		return app.CreatedOrder{}, err
	}

	return app.CreatedOrder{ID: resp.ID.String(), Reference: resp.Reference}, nil
}

type initiatePayload struct {
	OrderID     string `json:"order_id"`
	PayerMSISDN string `json:"payer_msisdn"`
}

type initiateResponse struct {
	ReferenceID string `json:"reference_id"`
}

func (c *Client) Initiate(ctx context.Context, orderID, msisdn string) (string, error) {
	var resp initiateResponse
	err := c.post(ctx, "/public/momo/initiate/", initiatePayload{OrderID: orderID, PayerMSISDN: msisdn}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ReferenceID, nil
}

type productResponse struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

func (c *Client) Product(ctx context.Context, productID string) (app.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/public/products/"+productID+"/", nil)
	if err != nil {
		return app.Product{}, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	var resp productResponse
	if err := c.do(req, &resp); err != nil {
		return app.Product{}, err
	}

	amount, err := parseAmount(resp.Price)
	if err != nil {
		return app.Product{}, fmt.Errorf("product %s: bad price %q: %w", productID, resp.Price, err)
	}

	return app.Product{
		ID:       resp.ID.String(),
		Name:     resp.Name,
		Currency: "UGX",
		Amount:   amount,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(out)
}

// parseAmount accepts both integer and decimal-string prices; UGX has no
// minor units so fractions are truncated.
func parseAmount(n json.Number) (int64, error) {
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
