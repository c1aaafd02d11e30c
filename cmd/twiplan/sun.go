// Public domain.

package main

import (
	"github.com/spf13/cobra"

	sexa "github.com/soniakeys/sexagesimal"

	"github.com/fiberspec/twiplan/internal/config"
	"github.com/fiberspec/twiplan/internal/ephem"
)

func newSunCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "sun",
		Short: "Print sunrise and sunset for a date",
		Long: `Print sunrise and sunset for a date.

Times are for the configured site and its event horizon altitude, in
site local time and UT.  This is the anchor computation the planner
uses, exposed for checking a night's numbers.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			site, err := cfg.EphemSite()
			if err != nil {
				return err
			}
			y, m, d, err := parseDate(date, site.TZ)
			if err != nil {
				return err
			}
			cmd.Printf("%s  %.4f %.4f  elev %.0f m  horizon %s\n",
				site.Name, site.Lat, site.Lon, site.Elevation,
				sexa.FmtAngle(site.Horizon))
			for _, ev := range []ephem.Event{ephem.Sunrise, ephem.Sunset} {
				at, err := ephem.SunEvent(site, y, m, d, ev)
				if err != nil {
					return err
				}
				cmd.Printf("%-8s %s  (%s UT)\n", ev,
					at.In(site.TZ).Format("2006-01-02 15:04:05 MST"),
					at.UTC().Format("15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "local calendar date YYYY-MM-DD (default today at the site)")
	return cmd
}
