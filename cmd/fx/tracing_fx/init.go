package tracing_fx

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"identity/internal/config"
	"identity/pkg/obs"
)

const serviceVersion = "0.1.0"

var Module = fx.Options(
	fx.Provide(provideTracerProvider),
	fx.Invoke(installTracerProvider),
)

func provideTracerProvider(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*sdktrace.TracerProvider, error) {
	tp, err := obs.NewTracerProvider(context.Background(), obs.TracerConfig{
		ServiceName:  cfg.ServiceName,
		Version:      serviceVersion,
		Environment:  cfg.AppEnv,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				logger.Warn("Error flushing spans", zap.Error(err))
				return err
			}
			logger.Info("Tracer provider shut down")
			return nil
		},
	})
	return tp, nil
}

// Runs before the services are built, so their tracers come from this provider.
func installTracerProvider(tp *sdktrace.TracerProvider, cfg config.Config, logger *zap.Logger) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(obs.Propagator())
	logger.Info("Tracing enabled",
		zap.String("service", cfg.ServiceName),
		zap.Bool("export", cfg.OTLPEndpoint != ""))
}
