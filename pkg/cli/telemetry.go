package cli

import (
	"context"

	"github.com/nimburion/i18nbuild/pkg/config"
	"github.com/nimburion/i18nbuild/pkg/observability/logger"
	"github.com/nimburion/i18nbuild/pkg/observability/metrics"
	"github.com/nimburion/i18nbuild/pkg/observability/tracing"
	"github.com/nimburion/i18nbuild/pkg/version"
)

// startTelemetry installs the tracer provider of a run. The returned function
// flushes pending spans and writes the metrics textfile when one is configured.
func startTelemetry(ctx context.Context, cfg *config.Config, log logger.Logger, buildID, target string) (func(), error) {
	tc := cfg.TracerConfig(version.Tool, version.Current().Version)
	tc.BuildID = buildID
	tc.Target = target
	provider, err := tracing.NewTracerProvider(ctx, tc)
	if err != nil {
		return nil, err
	}
	if provider.Exported() {
		log.Debug("exporting spans", "endpoint", tc.Endpoint, "sample_rate", tc.SampleRate)
	}
	return func() {
		if err := provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
		if cfg.Metrics.Textfile == "" {
			return
		}
		if err := metrics.NewRegistry().WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn("metrics not written", "error", err)
			return
		}
		log.Debug("metrics written", "path", cfg.Metrics.Textfile)
	}, nil
}
