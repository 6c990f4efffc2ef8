package window

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lunar/moonwatch/internal/ephemeris"
	"github.com/lunar/moonwatch/internal/metrics"
)

// Config holds the ground site an Enricher computes for.
type Config struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	Zone         *time.Location
}

// Enricher maps raw launch windows to enriched records using an injected
// ephemeris provider. Windows are processed sequentially in input order; no
// state is shared between them.
type Enricher struct {
	provider ephemeris.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewEnricher creates an Enricher for the given site.
func NewEnricher(provider ephemeris.Provider, cfg Config, logger *slog.Logger) *Enricher {
	return &Enricher{provider: provider, cfg: cfg, logger: logger}
}

// Enrich produces one EnrichedWindow per input window, preserving order.
// A provider failure aborts the run; an absent moonrise does not.
func (e *Enricher) Enrich(windows []LaunchWindow) ([]EnrichedWindow, error) {
	enriched := make([]EnrichedWindow, 0, len(windows))
	for i, w := range windows {
		ew, err := e.enrichOne(w)
		if err != nil {
			return nil, fmt.Errorf("window %d (start %s): %w", i, w.StartUTC.Format(time.RFC3339), err)
		}
		enriched = append(enriched, ew)
		metrics.IncWindowsEnriched()
	}
	return enriched, nil
}

func (e *Enricher) enrichOne(w LaunchWindow) (EnrichedWindow, error) {
	end := w.EndUTC()

	moonStart, err := e.provider.TopocentricAt(w.StartUTC, e.cfg.LatitudeDeg, e.cfg.LongitudeDeg)
	if err != nil {
		return EnrichedWindow{}, fmt.Errorf("moon position at window start: %w", err)
	}
	metrics.IncEphemerisCall("position")

	moonEnd, err := e.provider.TopocentricAt(end, e.cfg.LatitudeDeg, e.cfg.LongitudeDeg)
	if err != nil {
		return EnrichedWindow{}, fmt.Errorf("moon position at window end: %w", err)
	}
	metrics.IncEphemerisCall("position")

	riseUTC, err := e.firstMoonrise(w.StartUTC)
	if err != nil {
		return EnrichedWindow{}, fmt.Errorf("moonrise search: %w", err)
	}

	ill, err := e.provider.IlluminationAt(w.StartUTC)
	if err != nil {
		return EnrichedWindow{}, fmt.Errorf("illumination: %w", err)
	}
	metrics.IncEphemerisCall("illumination")

	ew := EnrichedWindow{
		LaunchWindow: w,
		EndUTC:       end,
		StartLocal:   w.StartUTC.In(e.cfg.Zone),
		EndLocal:     end.In(e.cfg.Zone),
		MoonStart:    moonStart,
		MoonEnd:      moonEnd,

		IlluminationPercent: ill.Percent,
		PhaseDeg:            ill.PhaseDeg,
	}
	if riseUTC != nil {
		local := riseUTC.In(e.cfg.Zone)
		ew.MoonriseUTC = riseUTC
		ew.MoonriseLocal = &local
	}
	return ew, nil
}

// firstMoonrise returns the earliest rise event within the UTC calendar day
// containing t, or nil when the Moon does not rise that day.
func (e *Enricher) firstMoonrise(t time.Time) (*time.Time, error) {
	events, err := e.provider.RiseSetEvents(t, e.cfg.LatitudeDeg, e.cfg.LongitudeDeg)
	if err != nil {
		return nil, err
	}
	metrics.IncEphemerisCall("rise_set")

	for _, ev := range events {
		if ev.Kind == ephemeris.EventRise {
			rise := ev.Time
			return &rise, nil
		}
	}
	e.logger.Debug("no moonrise on window start date", "date", t.UTC().Format("2006-01-02"))
	return nil, nil
}
