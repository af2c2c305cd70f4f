// Package dexscreener adapts the DexScreener token endpoint to the watch
// domain's MarketDataClient contract.
package dexscreener

import (
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"tokenwatch/internal/domain/watch"
	"tokenwatch/internal/metrics"
	"tokenwatch/pkg/errors"
	"tokenwatch/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches token market data from DexScreener.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	log     *logger.Logger
}

// NewClient creates a DexScreener client. baseURL defaults to the public API
// when empty.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.dexscreener.com"
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log.With("component", "dexscreener_client"),
	}
}

// TokenSnapshot fetches the current market snapshot for a mint. Only the
// first pair of the response is used. An absent or empty pairs array maps to
// errors.ErrTokenNotFound; transport, status and decode failures map to
// errors.ErrProviderUnavailable. Exactly one request per call, no retries.
func (c *Client) TokenSnapshot(ctx context.Context, mint string) (*watch.MarketSnapshot, error) {
	requestURL := c.baseURL + "/latest/dex/tokens/" + mint

	c.log.Debugw("Requesting token pairs", "url", requestURL)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentType("application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("dexscreener", "transport").Inc()
		c.log.Warnw("DexScreener request failed", "url", requestURL, "error", err)
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "request %s: %v", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.ProviderErrors.WithLabelValues("dexscreener", "status").Inc()
		c.log.Warnw("DexScreener returned non-OK status",
			"url", requestURL,
			"status", resp.StatusCode(),
		)
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "status %d from %s", resp.StatusCode(), requestURL)
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		metrics.ProviderErrors.WithLabelValues("dexscreener", "decode").Inc()
		c.log.Warnw("Failed to decode DexScreener response", "url", requestURL, "error", err)
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "decode response from %s: %v", requestURL, err)
	}

	metrics.ProviderCalls.WithLabelValues("dexscreener").Inc()

	if len(body.Pairs) == 0 {
		c.log.Debugw("No pairs for token", "mint", mint)
		return nil, errors.ErrTokenNotFound
	}

	return body.Pairs[0].toSnapshot(), nil
}

var _ watch.MarketDataClient = (*Client)(nil)

// tokenResponse mirrors the DexScreener /latest/dex/tokens payload.
type tokenResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pairs         []pairData `json:"pairs"`
}

type pairData struct {
	ChainID   string        `json:"chainId"`
	DexID     string        `json:"dexId"`
	URL       string        `json:"url"`
	BaseToken dexToken      `json:"baseToken"`
	PriceUsd  string        `json:"priceUsd"`
	Volume    pairVolume    `json:"volume"`
	Liquidity *dexLiquidity `json:"liquidity"` // Pointer to handle nulls
	MarketCap float64       `json:"marketCap"`
}

type dexToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type dexLiquidity struct {
	Usd   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

type pairVolume struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

func (p *pairData) toSnapshot() *watch.MarketSnapshot {
	snap := &watch.MarketSnapshot{
		MarketCapUsd: decimal.NewFromFloat(p.MarketCap),
		Volume24hUsd: decimal.NewFromFloat(p.Volume.H24),
		Name:         p.BaseToken.Name,
		Symbol:       p.BaseToken.Symbol,
		PairURL:      p.URL,
	}

	if p.Liquidity != nil {
		snap.LiquidityUsd = decimal.NewFromFloat(p.Liquidity.Usd)
	}

	if p.PriceUsd != "" {
		if price, err := decimal.NewFromString(p.PriceUsd); err == nil {
			snap.PriceUsd = &price
		}
	}

	return snap
}
