// Public domain.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/soniakeys/unit"
	"github.com/spf13/cobra"

	"github.com/fiberspec/twiplan/internal/retarget"
)

func newRetargetCommand() *cobra.Command {
	var (
		inPath, outPath string
		ra, dec         float64
		scale, rotation float64
		cols            = retarget.DefaultColumns()
	)
	cmd := &cobra.Command{
		Use:   "retarget",
		Short: "Reproject a fiber table onto a new boresight",
		Long: `Reproject a fiber table onto a new boresight.

When a focal-plane configuration built for one field is reused to
observe another, the stored per-fiber target coordinates no longer
match the sky.  This command maps each fiber's focal-plane X/Y through
a tangent-plane plate solution at the new boresight, rewrites the
target coordinate columns, and records the new pointing in the table
header.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("ra") || !cmd.Flags().Changed("dec") {
				return fmt.Errorf("both --ra and --dec are required")
			}
			if dec < -90 || dec > 90 {
				return fmt.Errorf("declination %g out of range", dec)
			}

			in, err := os.Open(inPath)
			if err != nil {
				return errors.Wrap(err, "open fiber table")
			}
			defer in.Close()
			tb, err := retarget.Read(in)
			if err != nil {
				return err
			}

			tp := retarget.TangentPlane{
				RA:       unit.AngleFromDeg(ra),
				Dec:      unit.AngleFromDeg(dec),
				Scale:    scale,
				Rotation: unit.AngleFromDeg(rotation),
			}
			if err := tb.Apply(cols, tp.XYToSky); err != nil {
				return err
			}
			tb.SetKeyword(retarget.KeyFieldRA, strconv.FormatFloat(ra, 'f', 4, 64))
			tb.SetKeyword(retarget.KeyFieldDec, strconv.FormatFloat(dec, 'f', 4, 64))

			out, err := os.Create(outPath)
			if err != nil {
				return errors.Wrap(err, "create output table")
			}
			if err := tb.Write(out); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return errors.Wrap(err, "close output table")
			}
			logrus.WithFields(logrus.Fields{
				"fibers": len(tb.Rows),
				"ra":     ra,
				"dec":    dec,
				"path":   outPath,
			}).Info("retargeted fiber table")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&inPath, "in", "i", "", "fiber table to reproject")
	flags.StringVarP(&outPath, "out", "o", "", "output table path")
	flags.Float64Var(&ra, "ra", 0, "new boresight right ascension, degrees")
	flags.Float64Var(&dec, "dec", 0, "new boresight declination, degrees")
	flags.Float64Var(&scale, "scale", 14.22, "plate scale, arcseconds per mm")
	flags.Float64Var(&rotation, "rotation", 0, "field rotation, degrees east of north")
	flags.StringVar(&cols.X, "x-column", cols.X, "focal plane x column name")
	flags.StringVar(&cols.Y, "y-column", cols.Y, "focal plane y column name")
	flags.StringVar(&cols.RA, "ra-column", cols.RA, "target RA column name")
	flags.StringVar(&cols.Dec, "dec-column", cols.Dec, "target Dec column name")
	cobra.CheckErr(cmd.MarkFlagRequired("in"))
	cobra.CheckErr(cmd.MarkFlagRequired("out"))
	return cmd
}
