// Public domain.

package retarget

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Default column names of the fiber assignment table.
const (
	ColFiberX    = "FIBER_X"
	ColFiberY    = "FIBER_Y"
	ColTargetRA  = "TARGET_RA"
	ColTargetDec = "TARGET_DEC"
)

// Boresight header keywords rewritten by Apply.
const (
	KeyFieldRA  = "FIELDRA"
	KeyFieldDec = "FIELDDEC"
)

// Keyword is one header card of the table, carried through a rewrite
// untouched unless Apply updates it.
type Keyword struct {
	Name  string
	Value string
}

// Table is an in-memory fiber assignment table: header keywords, a
// column name row, and string cells.  Columns other than the fiber
// position and target coordinate columns pass through unmodified.
type Table struct {
	Keywords []Keyword
	Columns  []string
	Rows     [][]string
}

// Columns addressed by Apply.
type ColumnSpec struct {
	X, Y, RA, Dec string
}

// DefaultColumns returns the survey's standard column names.
func DefaultColumns() ColumnSpec {
	return ColumnSpec{X: ColFiberX, Y: ColFiberY, RA: ColTargetRA, Dec: ColTargetDec}
}

func (tb *Table) index(name string) (int, error) {
	for i, c := range tb.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("retarget: table has no %q column", name)
}

// SetKeyword replaces the value of a header keyword, appending the
// card if absent.
func (tb *Table) SetKeyword(name, value string) {
	for i, k := range tb.Keywords {
		if k.Name == name {
			tb.Keywords[i].Value = value
			return
		}
	}
	tb.Keywords = append(tb.Keywords, Keyword{name, value})
}

// Keyword returns the value of a header keyword.
func (tb *Table) Keyword(name string) (string, bool) {
	for _, k := range tb.Keywords {
		if k.Name == name {
			return k.Value, true
		}
	}
	return "", false
}

// Apply rewrites the target coordinate columns of every row through
// the transform, reading each fiber's focal-plane position from the X
// and Y columns.  Coordinates are written in degrees.
func (tb *Table) Apply(spec ColumnSpec, t XYToSky) error {
	xi, err := tb.index(spec.X)
	if err != nil {
		return err
	}
	yi, err := tb.index(spec.Y)
	if err != nil {
		return err
	}
	rai, err := tb.index(spec.RA)
	if err != nil {
		return err
	}
	deci, err := tb.index(spec.Dec)
	if err != nil {
		return err
	}
	for i, row := range tb.Rows {
		x, err := strconv.ParseFloat(strings.TrimSpace(row[xi]), 64)
		if err != nil {
			return errors.Wrapf(err, "retarget: row %d column %s", i+1, spec.X)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[yi]), 64)
		if err != nil {
			return errors.Wrapf(err, "retarget: row %d column %s", i+1, spec.Y)
		}
		ra, dec := t(x, y)
		row[rai] = strconv.FormatFloat(ra.Deg(), 'f', 7, 64)
		row[deci] = strconv.FormatFloat(dec.Deg(), 'f', 7, 64)
	}
	return nil
}

// Read parses a fiber table.  Leading lines of the form
// "# NAME = value" are header keywords; the first non-comment line
// names the columns.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	// header cards are one-field records, so no fixed field count
	cr.FieldsPerRecord = -1
	tb := &Table{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "retarget: read table")
		}
		if len(rec) > 0 && strings.HasPrefix(rec[0], "#") {
			if len(tb.Columns) > 0 {
				return nil, fmt.Errorf("retarget: header card after column row: %q", rec[0])
			}
			// a card value may itself contain commas; the CSV
			// reader has split on them, so put the line back
			card := strings.TrimPrefix(strings.Join(rec, ","), "#")
			name, value, ok := strings.Cut(card, "=")
			if !ok {
				return nil, fmt.Errorf("retarget: malformed header card %q", card)
			}
			tb.Keywords = append(tb.Keywords,
				Keyword{strings.TrimSpace(name), strings.TrimSpace(value)})
			continue
		}
		if tb.Columns == nil {
			tb.Columns = rec
			continue
		}
		if len(rec) != len(tb.Columns) {
			return nil, fmt.Errorf("retarget: row %d has %d fields, want %d",
				len(tb.Rows)+1, len(rec), len(tb.Columns))
		}
		tb.Rows = append(tb.Rows, rec)
	}
	if tb.Columns == nil {
		return nil, fmt.Errorf("retarget: table has no column row")
	}
	return tb, nil
}

// Write emits the table in the same layout Read accepts.
func (tb *Table) Write(w io.Writer) error {
	for _, k := range tb.Keywords {
		if _, err := fmt.Fprintf(w, "# %s = %s\n", k.Name, k.Value); err != nil {
			return errors.Wrap(err, "retarget: write header")
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(tb.Columns); err != nil {
		return errors.Wrap(err, "retarget: write columns")
	}
	for _, row := range tb.Rows {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "retarget: write row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "retarget: write table")
}
