package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slimtomatillo/ephemeris/internal/catalog"
	"github.com/slimtomatillo/ephemeris/internal/geo"
	"github.com/slimtomatillo/ephemeris/internal/orbital"
)

var (
	listPage    int
	listText    string
	listCountry string
	findMax     int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list one page of tracked satellites",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := newCatalog()
		if err != nil {
			return err
		}
		sats, err := cat.Satellites(cmd.Context(), catalog.Query{
			Page:    listPage,
			Text:    listText,
			Country: listCountry,
		})
		if err != nil {
			return err
		}
		for _, sat := range sats {
			printObject(sat)
		}
		fmt.Printf("%d satellites (page %d)\n", len(sats), listPage)
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "search satellites by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := newCatalog()
		if err != nil {
			return err
		}
		sats, err := cat.FindByName(cmd.Context(), args[0], findMax)
		if err != nil {
			return err
		}
		if len(sats) == 0 {
			fmt.Printf("no satellites matching %q\n", args[0])
			return nil
		}
		for _, sat := range sats {
			printObject(sat)
		}
		return nil
	},
}

var idCmd = &cobra.Command{
	Use:   "id <catalog-id>",
	Short: "look a satellite up by catalog (NORAD) number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := newCatalog()
		if err != nil {
			return err
		}
		sat, err := cat.FindByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if sat == nil {
			return fmt.Errorf("no satellite with catalog id %s", args[0])
		}
		printObject(sat)
		return nil
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "list launch countries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := newCatalog()
		if err != nil {
			return err
		}
		countries, err := cat.Countries(cmd.Context(), false)
		if err != nil {
			return err
		}
		for _, country := range countries {
			fmt.Printf("%-4s %s\n", country.Abbreviation, country.Name)
		}
		return nil
	},
}

var distanceCmd = &cobra.Command{
	Use:   "distance <lat,lon[,alt-km]> <lat,lon[,alt-km]>",
	Short: "distances between two geodetic points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat1, lon1, alt1, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		lat2, lon2, alt2, err := parsePoint(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("surface (haversine): %.1f km\n", geo.HaversineKm(lat1, lon1, lat2, lon2))
		fmt.Printf("straight line:       %.1f km\n", geo.DistanceKm(lat1, lon1, alt1, lat2, lon2, alt2))
		fmt.Printf("elevation:           %.1f deg\n", geo.ElevationAngle(lat1, lon1, alt1, lat2, lon2, alt2))
		fmt.Printf("azimuth:             %.1f deg\n", geo.AzimuthAngle(lat1, lon1, lat2, lon2))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "show client pacing and cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, client, err := newCatalog()
		if err != nil {
			return err
		}
		// One cheap call so the pacing numbers mean something.
		if _, err := cat.Countries(cmd.Context(), false); err != nil {
			return err
		}
		stats := client.Stats()
		fmt.Printf("requests made:     %d\n", stats.RequestCount)
		fmt.Printf("requests/second:   %.2f\n", stats.RequestsPerSecond)
		fmt.Printf("min interval:      %s\n", stats.MinInterval)
		fmt.Printf("since last:        %s\n", stats.TimeSinceLast)
		fmt.Printf("can call now:      %v\n", stats.CanCallNow)

		cache := cat.CacheStats()
		fmt.Printf("cache ttl:         %s\n", cache.TTL)
		fmt.Printf("list slot:         populated=%v valid=%v\n",
			cache.SatelliteList.Populated, cache.SatelliteList.Valid)
		fmt.Printf("countries slot:    populated=%v valid=%v\n",
			cache.Countries.Populated, cache.Countries.Valid)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "result page")
	listCmd.Flags().StringVarP(&listText, "text", "t", "", "server-side text filter")
	listCmd.Flags().StringVarP(&listCountry, "country", "c", "", "launch country abbreviation")
	findCmd.Flags().IntVarP(&findMax, "max", "m", catalog.DefaultMaxResults, "maximum results")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(idCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(statsCmd)
}

func printObject(sat *orbital.Object) {
	line := fmt.Sprintf("%-8s %s", sat.CatalogID, sat.Name)
	if sat.HasPosition() {
		line += fmt.Sprintf("  lat=%.3f lon=%.3f alt=%.1fkm",
			sat.Position.LatDeg, sat.Position.LonDeg, sat.Position.AltKm)
	}
	if sat.ObservedAt != nil {
		line += "  " + orbital.FormatEpoch(*sat.ObservedAt, orbital.FormatReadable)
	}
	fmt.Println(line)
}

// parsePoint parses "lat,lon" or "lat,lon,alt-km".
func parsePoint(s string) (lat, lon, alt float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("point %q must be lat,lon or lat,lon,alt-km", s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("point %q: %w", s, err)
		}
	}
	lat, lon = vals[0], vals[1]
	if len(vals) == 3 {
		alt = vals[2]
	}
	return lat, lon, alt, nil
}
