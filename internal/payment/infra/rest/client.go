package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/neeste/storefront/internal/payment/domain"
)

// Client polls the backend's payment status endpoint. Any transport
// failure or non-2xx response comes back as an error; the engine treats
// those as non-terminal ticks.
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

type statusResponse struct {
	OrderStatus   string `json:"order_status"`
	MomoStatus    string `json:"momo_status"`
	DownloadLinks []struct {
		Product string `json:"product"`
		URL     string `json:"url"`
	} `json:"download_links"`
}

func (c *Client) Status(ctx context.Context, referenceID string) (domain.Status, error) {
	url := c.base + "/public/momo/status/" + referenceID + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Status{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Status{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Status{}, fmt.Errorf("status poll %s: status %d", referenceID, resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Status{}, fmt.Errorf("status poll %s: decode: %w", referenceID, err)
	}

	st := domain.Status{
		MomoStatus:  body.MomoStatus,
		OrderStatus: body.OrderStatus,
	}
	for _, l := range body.DownloadLinks {
		st.DownloadLinks = append(st.DownloadLinks, domain.DownloadLink{Product: l.Product, URL: l.URL})
	}
	return st, nil
}
