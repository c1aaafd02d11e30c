// Public domain.

package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"
)

const versionString = "twiplan version 0.3 Go source."

var (
	logLevel   = "info"
	configPath = ""
)

func main() {
	defer exit.Handler()
	if err := newRootCommand().Execute(); err != nil {
		exit.Log(err)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "twiplan",
		Short:         "twilight calibration planning for the fiber spectrograph survey",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&logLevel, "log-level", "l", logLevel,
		"log level (trace, debug, info, warn, error)")
	pf.StringVarP(&configPath, "config", "c", "",
		"YAML file overriding the built-in site and calibration constants")
	cmd.AddCommand(
		newPlanCommand(),
		newSunCommand(),
		newRetargetCommand(),
		newVersionCommand(),
	)
	return cmd
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Kitchen,
	})
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(versionString)
		},
	}
}

// parseDate reads a YYYY-MM-DD calendar date.  An empty string means
// today in the given location.
func parseDate(s string, loc *time.Location) (int, time.Month, int, error) {
	if s == "" {
		y, m, d := time.Now().In(loc).Date()
		return y, m, d, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return y, m, d, nil
}
