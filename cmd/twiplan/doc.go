// Public domain.

/*
Command twiplan plans twilight flat calibration observations for a
fiber-fed spectrograph survey and retargets fiber tables between
fields.

Contents

  Program overview
  Command line usage
  The sky model
  Schedule script format
  Fiber table format

Program overview

Flat field calibrations are taken against the twilight sky, whose
brightness falls roughly exponentially after sunset.  twiplan solves
the exposure sequence that keeps the accumulated detector signal of
each flat near a fixed target as the sky dims, and writes the result
as a script for the observation sequencer.  A companion subcommand
reprojects a previously built fiber assignment table onto a new
boresight so a focal-plane configuration can be reused on another
field.

Command line usage

  twiplan plan [--date YYYY-MM-DD] [--morning] [-o script.json]
  twiplan sun [--date YYYY-MM-DD]
  twiplan retarget --in old.csv --out new.csv --ra RA --dec DEC
  twiplan version

Global options:

  -c <config-file>   YAML overriding built-in site and calibration
                     constants
  -l <level>         log level

The date is a calendar date in the site's local time; the anchor
event (sunset, or sunrise with --morning) is found for that local
date even when it falls on a different UT day.

The sky model

Sky surface brightness decays with a fixed half-life from its value at
the anchor event.  Starting a configured wait after the anchor, each
exposure duration is the closed-form time that integrates the decaying
flux to the target signal; the readout overhead is added and the next
exposure is solved from the dimmer sky.  The sequence ends when the
model can no longer reach the target in finite time or the duration
would pass the configured ceiling.  Morning sequences use the same
solution mirrored about sunrise, longest exposure first.

Schedule script format

JSON, an array of records:

  [
    {
      "sequence": "Spectrographs",
      "flavor": "twilight",
      "program": "twilight flats",
      "exptime": 1.48,
      "starttime": "2026-03-21T01:44:30Z"
    },
    ...
  ]

Only the first record carries a start time; the sequencer runs the
rest back to back.  Field layout is owned by the sequencer.

Fiber table format

CSV with leading "# NAME = value" header cards.  The focal-plane
position columns (FIBER_X, FIBER_Y, millimeters) feed the plate
solution; the target coordinate columns (TARGET_RA, TARGET_DEC,
degrees) are rewritten, and the FIELDRA/FIELDDEC cards record the new
boresight.  All other columns and cards pass through untouched.
*/
package main
