// Command moondiag prints the Moon's current position and illumination for
// the Kennedy Space Center site. Quick sanity check for the almanac wiring.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lunar/moonwatch/internal/ephemeris"
)

const (
	ksLat = 28.57
	ksLon = -80.65
)

func main() {
	provider := ephemeris.NewMeeus()
	now := time.Now().UTC()

	pos, err := provider.TopocentricAt(now, ksLat, ksLon)
	if err != nil {
		fmt.Println("ERROR computing moon position:", err)
		os.Exit(1)
	}

	ill, err := provider.IlluminationAt(now)
	if err != nil {
		fmt.Println("ERROR computing illumination:", err)
		os.Exit(1)
	}

	fmt.Printf("Moon at %s for %.2f°N %.2f°E\n", now.Format(time.RFC3339), ksLat, ksLon)
	fmt.Printf("  altitude  %8.2f°\n", pos.AltitudeDeg)
	fmt.Printf("  azimuth   %8.2f°\n", pos.AzimuthDeg)
	fmt.Printf("  distance  %8.0f km\n", pos.DistanceKm)
	fmt.Printf("  RA        %8.3f h\n", pos.RAHours)
	fmt.Printf("  dec       %8.2f°\n", pos.DecDeg)
	fmt.Printf("  illum     %8.1f%%  (phase %.1f°)\n", ill.Percent, ill.PhaseDeg)

	events, err := provider.RiseSetEvents(now, ksLat, ksLon)
	if err != nil {
		fmt.Println("ERROR computing rise/set:", err)
		os.Exit(1)
	}
	if len(events) == 0 {
		fmt.Println("  no horizon crossings today")
		return
	}
	for _, ev := range events {
		fmt.Printf("  %-4s      %s\n", ev.Kind, ev.Time.Format(time.RFC3339))
	}
}
