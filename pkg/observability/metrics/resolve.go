package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a configure run.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Locale data fallback kinds.
const (
	FallbackSubtag  = "subtag"
	FallbackMissing = "missing"
)

var (
	// configureDuration tracks the duration of i18n configuration runs.
	// Labels: outcome
	configureDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "i18nbuild_configure_duration_seconds",
			Help:    "Duration of i18n build configuration runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	// translationFilesTotal counts loaded translation files.
	// Labels: format
	translationFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18nbuild_translation_files_loaded_total",
			Help: "Total number of translation files loaded",
		},
		[]string{"format"},
	)

	// translationMessagesTotal counts messages read from translation files.
	// Labels: format
	translationMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18nbuild_translation_messages_total",
			Help: "Total number of messages read from translation files",
		},
		[]string{"format"},
	)

	// localeDataFallbacksTotal counts locales resolved without their exact locale data.
	// Labels: kind
	localeDataFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18nbuild_locale_data_fallbacks_total",
			Help: "Total number of locales whose exact locale data was not found",
		},
		[]string{"kind"},
	)

	// inlinedLocales reports the number of locales inlined by the last run.
	inlinedLocales = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "i18nbuild_inlined_locales",
			Help: "Number of locales inlined by the last configuration run",
		},
	)
)

// ObserveConfigure records the duration and outcome of a configuration run.
func ObserveConfigure(outcome string, duration time.Duration) {
	configureDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordTranslationFile records one loaded translation file.
func RecordTranslationFile(format string, messages int) {
	translationFilesTotal.WithLabelValues(format).Inc()
	translationMessagesTotal.WithLabelValues(format).Add(float64(messages))
}

// RecordLocaleDataFallback records a locale whose exact locale data was missing.
func RecordLocaleDataFallback(kind string) {
	localeDataFallbacksTotal.WithLabelValues(kind).Inc()
}

// SetInlinedLocales reports the inlined locale count of the last run.
func SetInlinedLocales(count int) {
	inlinedLocales.Set(float64(count))
}
