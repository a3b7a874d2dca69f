package impl

import (
	"io"
	"log/slog"

	"bizdir/config"
	"bizdir/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Listing: &config.ListingConfig{
			DefaultLimit:            10,
			MaxLimit:                100,
			NearbyDefaultDistanceKm: 10,
			NearbyMaxResults:        500,
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func newValidBusinessInput() *usecase.BusinessInput {
	return &usecase.BusinessInput{
		BusinessName:  ptr("  Sunrise Bakery  "),
		Description:   ptr("Fresh bread and pastries every morning."),
		ContactNumber: ptr("+12125550123"),
		Email:         ptr("Hello@SunriseBakery.com"),
		Category:      ptr("Food & Dining"),
	}
}
