// Command moonwatch prints a Moon report for each candidate launch window in
// a CSV availability file: local window times, lunar altitude/azimuth at the
// window open and close, the first moonrise of the window's UTC date, and the
// illuminated fraction of the disk.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lunar/moonwatch/internal/ephemeris"
	"github.com/lunar/moonwatch/internal/metrics"
	"github.com/lunar/moonwatch/internal/window"
)

// Kennedy Space Center pad coordinates and local zone.
const (
	defaultLat     = 28.57
	defaultLon     = -80.65
	defaultZone    = "America/New_York"
	defaultCSVPath = "launch_windows.csv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	csvPath, siteCfg := loadSiteConfig(logger)

	zone, err := time.LoadLocation(siteCfg.zoneName)
	if err != nil {
		logger.Error("unresolvable time zone", "zone", siteCfg.zoneName, "error", err)
		os.Exit(1)
	}

	windows, err := window.LoadFile(csvPath, logger)
	if err != nil {
		metrics.IncLoadFailure()
		logger.Error("failed to load launch windows", "path", csvPath, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded launch windows", "path", csvPath, "count", len(windows))

	enricher := window.NewEnricher(ephemeris.NewMeeus(), window.Config{
		LatitudeDeg:  siteCfg.latDeg,
		LongitudeDeg: siteCfg.lonDeg,
		Zone:         zone,
	}, logger)

	enriched, err := enricher.Enrich(windows)
	if err != nil {
		logger.Error("enrichment failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Moon report for %d launch windows at %.2f°N %.2f°E (%s)\n\n",
		len(enriched), siteCfg.latDeg, siteCfg.lonDeg, siteCfg.zoneName)
	for _, ew := range enriched {
		fmt.Println(formatWindow(ew))
	}

	logger.Info("run complete", "summary", metrics.Summary())
}

// formatWindow renders one report line. Moonrise may legitimately be absent
// or fall outside the window; both cases are shown rather than skipped.
func formatWindow(ew window.EnrichedWindow) string {
	line := fmt.Sprintf("%s - %s | moon alt %6.1f° az %5.1f° (close: alt %6.1f°) | illum %5.1f%%",
		ew.StartLocal.Format("2006-01-02 15:04 MST"),
		ew.EndLocal.Format("15:04 MST"),
		ew.MoonStart.AltitudeDeg,
		ew.MoonStart.AzimuthDeg,
		ew.MoonEnd.AltitudeDeg,
		ew.IlluminationPercent,
	)
	if ew.MoonriseLocal == nil {
		return line + " | moonrise none"
	}
	offset := ew.MoonriseUTC.Sub(ew.StartUTC).Round(time.Minute)
	return line + fmt.Sprintf(" | moonrise %s (%+dm from open)",
		ew.MoonriseLocal.Format("15:04 MST"), int(offset.Minutes()))
}

type siteConfig struct {
	latDeg, lonDeg float64
	zoneName       string
}

// loadSiteConfig reads the CSV path and site parameters from the environment,
// keeping defaults on malformed values.
func loadSiteConfig(logger *slog.Logger) (string, siteConfig) {
	cfg := siteConfig{
		latDeg:   defaultLat,
		lonDeg:   defaultLon,
		zoneName: defaultZone,
	}
	csvPath := defaultCSVPath

	if v := os.Getenv("MOONWATCH_CSV_PATH"); v != "" {
		csvPath = v
	}

	if v := os.Getenv("MOONWATCH_LAT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < -90 || f > 90 {
			logger.Warn("invalid MOONWATCH_LAT value, using default", "value", v, "default", cfg.latDeg)
		} else {
			cfg.latDeg = f
		}
	}

	if v := os.Getenv("MOONWATCH_LON"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < -180 || f > 180 {
			logger.Warn("invalid MOONWATCH_LON value, using default", "value", v, "default", cfg.lonDeg)
		} else {
			cfg.lonDeg = f
		}
	}

	if v := os.Getenv("MOONWATCH_TZ"); v != "" {
		cfg.zoneName = v
	}

	logger.Info("site config",
		"csv_path", csvPath,
		"latitude", cfg.latDeg,
		"longitude", cfg.lonDeg,
		"zone", cfg.zoneName,
	)

	return csvPath, cfg
}
