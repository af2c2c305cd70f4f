// Package pricefeed provides the native-asset (SOL) price lookup, a
// boundary separate from the per-token watch feature.
package pricefeed

import (
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"tokenwatch/internal/metrics"
	"tokenwatch/pkg/errors"
	"tokenwatch/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CoinGeckoClient fetches the SOL/USD spot price from CoinGecko's free
// simple-price endpoint.
type CoinGeckoClient struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	log     *logger.Logger
}

// NewCoinGeckoClient creates a CoinGecko price client. baseURL defaults to
// the public API when empty.
func NewCoinGeckoClient(baseURL string, timeout time.Duration, log *logger.Logger) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com"
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &CoinGeckoClient{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log.With("component", "coingecko_client"),
	}
}

type simplePriceResponse struct {
	Solana struct {
		Usd float64 `json:"usd"`
	} `json:"solana"`
}

// SolPrice returns the current SOL price in USD.
func (c *CoinGeckoClient) SolPrice(ctx context.Context) (decimal.Decimal, error) {
	requestURL := c.baseURL + "/api/v3/simple/price?ids=solana&vs_currencies=usd"

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("coingecko", "transport").Inc()
		c.log.Warnw("CoinGecko request failed", "url", requestURL, "error", err)
		return decimal.Zero, errors.Wrapf(errors.ErrProviderUnavailable, "request %s: %v", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.ProviderErrors.WithLabelValues("coingecko", "status").Inc()
		c.log.Warnw("CoinGecko returned non-OK status", "url", requestURL, "status", resp.StatusCode())
		return decimal.Zero, errors.Wrapf(errors.ErrProviderUnavailable, "status %d from %s", resp.StatusCode(), requestURL)
	}

	var body simplePriceResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		metrics.ProviderErrors.WithLabelValues("coingecko", "decode").Inc()
		return decimal.Zero, errors.Wrapf(errors.ErrProviderUnavailable, "decode response from %s: %v", requestURL, err)
	}

	metrics.ProviderCalls.WithLabelValues("coingecko").Inc()

	return decimal.NewFromFloat(body.Solana.Usd), nil
}
