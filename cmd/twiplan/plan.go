// Public domain.

package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fiberspec/twiplan/internal/config"
	"github.com/fiberspec/twiplan/internal/ephem"
	"github.com/fiberspec/twiplan/internal/seqscript"
	"github.com/fiberspec/twiplan/internal/twilight"
)

func newPlanCommand() *cobra.Command {
	var (
		date    string
		morning bool
		outPath string
		pretty  bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a twilight flat exposure schedule",
		Long: `Compute a twilight flat exposure schedule.

The sky brightness after sunset is modeled as an exponential decay.
Exposure durations are solved so each exposure accumulates the same
target signal, and the result is written as a JSON script for the
observation sequencer.  With --morning the schedule is anchored at
sunrise instead and runs up to it through the brightening sky.`,
		RunE: func(_ *cobra.Command, _ []string) error {
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
			ev := ephem.Sunset
			if morning {
				ev = ephem.Sunrise
			}
			anchor, err := ephem.SunEvent(site, y, m, d, ev)
			if err != nil {
				return err
			}
			params := cfg.PlannerParams()
			seq, err := twilight.Plan(params)
			if err != nil {
				return err
			}
			if morning {
				seq = seq.Mirror()
			}
			logrus.WithFields(logrus.Fields{
				"date":      anchor.In(site.TZ).Format("2006-01-02"),
				"anchor":    anchor.In(site.TZ).Format("15:04:05 MST"),
				"event":     ev.String(),
				"exposures": len(seq),
			}).Info("planned twilight sequence")
			if len(seq) == 0 {
				logrus.Warn("sky model leaves no usable exposure window")
			}

			recs := seqscript.Build(seq, params.LeadingZeros, params.Overhead,
				anchor, cfg.Twilight.Program)
			if outPath == "" {
				return seqscript.Write(os.Stdout, recs, pretty)
			}
			if err := seqscript.WriteFile(outPath, recs, pretty); err != nil {
				return err
			}
			logrus.WithField("path", outPath).Info("wrote schedule script")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&date, "date", "", "local calendar date YYYY-MM-DD (default today at the site)")
	flags.BoolVar(&morning, "morning", false, "anchor at sunrise for morning twilights")
	flags.StringVarP(&outPath, "out", "o", "", "script output path (default stdout)")
	flags.BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
