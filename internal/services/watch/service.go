// Package watch implements the token watch and live-refresh engine: first
// detection pins a market cap baseline, and every refresh press re-renders
// the card against it in place.
package watch

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"tokenwatch/internal/domain/watch"
	"tokenwatch/internal/metrics"
	"tokenwatch/internal/solana"
	"tokenwatch/pkg/errors"
	"tokenwatch/pkg/logger"
	"tokenwatch/pkg/telegram"
)

// Service orchestrates detection and refresh. It is the sole writer of the
// registry; concurrent refreshes on one entry are independent
// fetch-then-edit units and the last fetch to complete wins the rendered
// state.
type Service struct {
	registry    watch.Registry
	market      watch.MarketDataClient
	bot         telegram.Bot
	detectDelay time.Duration
	log         *logger.Logger
}

// NewService creates the watch engine. detectDelay is the UX pause between
// the buy-links reply and the first fetch; zero disables it.
func NewService(
	registry watch.Registry,
	market watch.MarketDataClient,
	bot telegram.Bot,
	detectDelay time.Duration,
	log *logger.Logger,
) *Service {
	return &Service{
		registry:    registry,
		market:      market,
		bot:         bot,
		detectDelay: detectDelay,
		log:         log.With("service", "watch"),
	}
}

// OnDetect scans an inbound text message for a mint address and, on the
// first sighting in this chat, posts the live card and pins the baseline.
// Messages without an address are a silent no-op. All failures are absorbed
// here; nothing propagates to the update loop.
func (s *Service) OnDetect(ctx context.Context, chatID int64, text string) error {
	mint, ok := solana.ExtractAddress(text)
	if !ok {
		return nil
	}

	log := s.log.With("chat_id", chatID, "mint", mint)

	if n, err := solana.DecodedLen(mint); err == nil && n != solana.PubkeyBytes {
		log.Debugw("Detected address has unusual byte width", "bytes", n)
	}

	if _, exists := s.registry.Get(chatID, mint); exists {
		// Already watched in this chat: the original card keeps its
		// baseline, the mention still deserves the buy links.
		metrics.Detections.WithLabelValues("duplicate").Inc()
		if err := s.bot.SendMessageWithKeyboard(chatID, "Quick buy via trading bots:", buyLinksKeyboard(mint)); err != nil {
			log.Warnw("Failed to send buy links", "error", err)
		}
		return nil
	}

	if err := s.bot.SendMessageWithKeyboard(chatID, "New contract address detected ✅", buyLinksKeyboard(mint)); err != nil {
		metrics.Detections.WithLabelValues("send_failed").Inc()
		log.Warnw("Failed to send detection reply", "error", err)
		return nil
	}

	if s.detectDelay > 0 {
		select {
		case <-time.After(s.detectDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	snap, err := s.market.TokenSnapshot(ctx, mint)
	if err != nil {
		// No data, no card. A later mention retries cleanly.
		metrics.Detections.WithLabelValues("fetch_failed").Inc()
		if errors.Is(err, errors.ErrTokenNotFound) {
			log.Infow("No market data for detected address")
		} else {
			log.Warnw("Market data fetch failed on detection", "error", err)
		}
		return nil
	}

	baseline := snap.MarketCapUsd
	if !snap.HasValidMarketCap() {
		metrics.InvalidMarketCaps.Inc()
		log.Warnw("Invalid market cap on first fetch, baseline degrades to zero",
			"market_cap", snap.MarketCapUsd.String(),
		)
		baseline = decimal.Zero // corrected by the first valid refresh
	}

	body, keyboard := renderCard(card{
		Mint:       mint,
		Name:       snap.Name,
		PriceUsd:   snap.PriceUsd,
		Baseline:   baseline,
		CurrentCap: baseline,
		Volume24h:  snap.Volume24hUsd,
		Liquidity:  snap.LiquidityUsd,
		PairURL:    snap.PairURL,
	})

	messageID, err := s.bot.SendMessageWithOptions(chatID, body, telegram.MessageOptions{
		Keyboard:              &keyboard,
		DisableWebPagePreview: true,
	})
	if err != nil {
		// The entry must not exist with unset coordinates.
		metrics.Detections.WithLabelValues("send_failed").Inc()
		log.Warnw("Failed to send watch card, watch not created", "error", err)
		return nil
	}

	entry := watch.NewEntry(mint, snap, watch.MessageLocation{ChatID: chatID, MessageID: messageID})
	if !s.registry.PutIfAbsent(chatID, mint, entry) {
		// A racing detection of the same mint claimed the key while this
		// one was fetching. Its card and baseline stand; this card is a
		// duplicate and comes down.
		metrics.Detections.WithLabelValues("duplicate").Inc()
		log.Infow("Watch already claimed by concurrent detection, removing duplicate card",
			"message_id", messageID,
		)
		if err := s.bot.DeleteMessage(chatID, messageID); err != nil {
			log.Warnw("Failed to delete duplicate card", "message_id", messageID, "error", err)
		}
		return nil
	}

	metrics.Detections.WithLabelValues("watched").Inc()
	log.Infow("Watch created",
		"entry_id", entry.ID,
		"message_id", messageID,
		"baseline_market_cap", entry.Baseline().String(),
	)
	return nil
}

// OnRefresh handles a refresh button press: decode the mint from the
// payload, fetch once, re-render against the pinned baseline and edit the
// card in place. Unknown or malformed payloads are safe no-ops.
func (s *Service) OnRefresh(ctx context.Context, chatID int64, callbackID, payload string) error {
	mint, ok := parseRefreshPayload(payload)
	if !ok {
		s.log.Debugw("Ignoring malformed refresh payload", "chat_id", chatID, "payload", payload)
		return s.bot.AnswerCallback(callbackID, "", false)
	}

	log := s.log.With("chat_id", chatID, "mint", mint)

	entry, ok := s.registry.Get(chatID, mint)
	if !ok {
		// Watch expired or never existed. Not an error for the user.
		metrics.Refreshes.WithLabelValues("unknown_entry").Inc()
		log.Infow("Refresh for unknown watch ignored")
		return s.bot.AnswerCallback(callbackID, "", false)
	}

	log = log.With("entry_id", entry.ID)

	snap, err := s.market.TokenSnapshot(ctx, mint)
	if err != nil {
		// Entry survives; the card stays as it was and the user may retry.
		metrics.Refreshes.WithLabelValues("fetch_failed").Inc()
		if errors.Is(err, errors.ErrTokenNotFound) {
			log.Infow("No market data on refresh")
			return s.bot.AnswerCallback(callbackID, "No data available", false)
		}
		log.Warnw("Market data fetch failed on refresh", "error", err)
		return s.bot.AnswerCallback(callbackID, "", false)
	}

	effective, valid := entry.Observe(snap)
	if !valid {
		metrics.InvalidMarketCaps.Inc()
		log.Warnw("Invalid market cap on refresh, keeping last known-good value",
			"market_cap", snap.MarketCapUsd.String(),
			"last_good", effective.String(),
		)
	}

	body, keyboard := renderCard(card{
		Mint:       mint,
		Name:       entry.Name,
		PriceUsd:   snap.PriceUsd,
		Baseline:   entry.Baseline(),
		CurrentCap: effective,
		Volume24h:  snap.Volume24hUsd,
		Liquidity:  snap.LiquidityUsd,
		PairURL:    entry.PairURL,
	})

	if err := s.bot.EditMessage(entry.Location.ChatID, entry.Location.MessageID, body, &keyboard); err != nil {
		// The message may have been deleted externally. Non-fatal.
		metrics.Refreshes.WithLabelValues("edit_failed").Inc()
		log.Warnw("Failed to edit watch card", "error", err)
		return s.bot.AnswerCallback(callbackID, "", false)
	}

	metrics.Refreshes.WithLabelValues("ok").Inc()
	return s.bot.AnswerCallback(callbackID, "Updated · tracking since "+humanize.Time(entry.CreatedAt), false)
}
