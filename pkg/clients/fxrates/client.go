package fxrates

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aminedz/microimport/internal/domain/models"
)

// Client fetches a JSON document of official dinar exchange rates from a
// configured endpoint. Used only to refresh the editable configuration
// defaults; the calculation engine never calls out.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a rate fetcher for the given endpoint URL.
func NewClient(url string) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient, url: url}
}

// ratesPayload mirrors the expected endpoint response: dinars per foreign
// unit keyed by currency code.
type ratesPayload struct {
	EUR float64 `json:"EUR"`
	USD float64 `json:"USD"`
	TRY float64 `json:"TRY"`
	AED float64 `json:"AED"`
	CNY float64 `json:"CNY"`
}

// FetchRates retrieves the current rate document. Currencies missing from
// the response come back as zero; callers skip non-positive values.
func (c *Client) FetchRates(ctx context.Context) (models.RateTable, error) {
	var payload ratesPayload

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(c.url)
	if err != nil {
		return models.RateTable{}, fmt.Errorf("fetch rates: %w", err)
	}
	if resp.IsError() {
		return models.RateTable{}, fmt.Errorf("fetch rates: unexpected status %s", resp.Status())
	}

	rates := models.RateTable{
		EUR: payload.EUR,
		USD: payload.USD,
		TRY: payload.TRY,
		AED: payload.AED,
		CNY: payload.CNY,
	}
	if rates == (models.RateTable{}) {
		return rates, fmt.Errorf("fetch rates: response carried no usable rates")
	}

	return rates, nil
}
