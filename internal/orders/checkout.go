package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CheckoutClient talks to the external checkout provider to create a payment
// preference with redirect URLs for the three outcomes.
type CheckoutClient struct {
	baseURL     string
	accessToken string
	backURLs    BackURLs
	httpClient  *http.Client
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type PreferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return"`
	ExternalReference string           `json:"external_reference"`
}

type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

func NewCheckoutClient(baseURL, accessToken string, backURLs BackURLs) *CheckoutClient {
	if baseURL == "" {
		return nil
	}
	return &CheckoutClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		backURLs:    backURLs,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// CreatePreference registers the order with the provider and returns the
// redirect target the client sends the buyer to.
func (c *CheckoutClient) CreatePreference(ctx context.Context, orderRef string, items []PreferenceItem) (*Preference, error) {
	if c == nil {
		return nil, fmt.Errorf("checkout provider is not configured")
	}

	body, err := json.Marshal(preferenceRequest{
		Items:             items,
		BackURLs:          c.backURLs,
		AutoReturn:        "approved",
		ExternalReference: orderRef,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal preference: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preference failed with status: %d", resp.StatusCode)
	}

	var pref Preference
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &pref, nil
}
