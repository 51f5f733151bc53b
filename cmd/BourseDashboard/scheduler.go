package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/catalog"
)

// refreshQuotesIfStale runs a quote import when the catalog is empty or older than its max age.
func refreshQuotesIfStale(ctx context.Context, catalogService catalog.Service, log zerolog.Logger) error {
	needsUpdate, err := catalogService.NeedsUpdate(ctx)
	if err != nil {
		return fmt.Errorf("error checking if update is needed: %w", err)
	}
	if !needsUpdate {
		log.Info().Msg("Quotes are fresh, skipping initial import")
		return nil
	}

	log.Info().Msg("Quotes are outdated or missing, starting initial import")
	imported, err := catalogService.ImportQuotes(ctx)
	if err != nil {
		return fmt.Errorf("initial quote import: %w", err)
	}
	log.Info().Int("assets", imported).Msg("Initial quote import completed")
	return nil
}

// StartQuoteScheduler refreshes the asset catalog from the market data feed at a fixed interval.
// The caller owns the returned scheduler and must Stop it on shutdown.
func StartQuoteScheduler(catalogService catalog.Service, interval time.Duration, timeout time.Duration, log zerolog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		imported, err := catalogService.ImportQuotes(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error refreshing quotes")
			return
		}
		log.Info().Int("assets", imported).Msg("Quotes refreshed")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
