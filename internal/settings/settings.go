// Package settings loads the store's branding for the chrome around the
// checkout flow. The data is display-only; nothing in the payment path
// depends on it.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Site struct {
	StoreName      string `json:"store_name"`
	Tagline        string `json:"tagline"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	WhatsappNumber string `json:"whatsapp_number"`
}

type Loader struct {
	base string
	http *http.Client
}

func NewLoader(baseURL string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Loader{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Load fetches the site settings from the bootstrap endpoint. Callers
// treat failures as non-fatal and render defaults.
func (l *Loader) Load(ctx context.Context) (Site, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.base+"/public/bootstrap/", nil)
	if err != nil {
		return Site{}, err
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return Site{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Site{}, fmt.Errorf("bootstrap: status %d", resp.StatusCode)
	}

	var body struct {
		Settings Site `json:"settings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Site{}, fmt.Errorf("bootstrap: decode: %w", err)
	}
	return body.Settings, nil
}
