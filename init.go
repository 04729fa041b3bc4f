package main

import (
	"context"

	"github.com/tournevent/fraktjakt/internal/config"
	"github.com/tournevent/fraktjakt/internal/telemetry"
	"github.com/tournevent/fraktjakt/pkg/fraktjakt"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// setup wires configuration, telemetry and the Fraktjakt session for a
// single CLI invocation.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
		tracerShutdown = nil
	}

	session, err := newSession(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		session:        session,
		logger:         logger,
		metrics:        telemetry.NewMetrics(),
		tracerShutdown: tracerShutdown,
	}, nil
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func newSession(cfg *config.Config, logger *otelzap.Logger) (*fraktjakt.Client, error) {
	return fraktjakt.New(fraktjakt.Config{
		ConsignorID:  cfg.ConsignorID,
		ConsignorKey: cfg.ConsignorKey,
		Environment:  fraktjakt.Environment(cfg.Environment),
		Currency:     cfg.Currency,
		Language:     cfg.Language,
		UseMock:      cfg.UseMock,
		SenderAddress: fraktjakt.Address{
			Street1:     cfg.SenderStreet1,
			Street2:     cfg.SenderStreet2,
			PostalCode:  cfg.SenderPostalCode,
			CityName:    cfg.SenderCity,
			CountryCode: cfg.SenderCountry,
		},
	}, logger, otel.GetTracerProvider().Tracer(cfg.ServiceName))
}
