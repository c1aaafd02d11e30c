// Public domain.

// Package retarget reprojects stored fiber target coordinates onto a
// new boresight when a focal-plane configuration built for one field
// is reused to observe another.
package retarget

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
)

// XYToSky maps focal-plane coordinates in mm to sky coordinates for
// the current pointing.  Callers with an instrument plate solution of
// their own supply it here.
type XYToSky func(x, y float64) (ra, dec unit.Angle)

// TangentPlane is a gnomonic plate solution about a boresight: the
// focal plane is treated as the tangent plane at the boresight, with a
// constant plate scale and an optional field rotation.
type TangentPlane struct {
	RA       unit.Angle
	Dec      unit.Angle
	Scale    float64    // plate scale, arcseconds per mm
	Rotation unit.Angle // field rotation, measured from north through east
}

// XYToSky inverts the gnomonic projection.  The sky direction is built
// as a vector sum of the boresight direction with the tangent-plane
// offsets along the local east and north unit vectors, then read back
// as a spherical position.  +x is east, +y is north at zero rotation.
func (tp TangentPlane) XYToSky(x, y float64) (ra, dec unit.Angle) {
	ξ := unit.AngleFromSec(x * tp.Scale).Rad()
	η := unit.AngleFromSec(y * tp.Scale).Rad()
	if r := tp.Rotation.Rad(); r != 0 {
		sr, cr := math.Sincos(r)
		ξ, η = ξ*cr+η*sr, η*cr-ξ*sr
	}

	sa, ca := math.Sincos(tp.RA.Rad())
	sd, cd := math.Sincos(tp.Dec.Rad())
	bore := coord.Cart{X: ca * cd, Y: sa * cd, Z: sd}
	east := coord.Cart{X: -sa, Y: ca}
	north := coord.Cart{X: -ca * sd, Y: -sa * sd, Z: cd}

	east.MulScalar(&east, ξ)
	north.MulScalar(&north, η)
	var v coord.Cart
	v.Add(&bore, &east)
	v.Add(&v, &north)

	m := math.Sqrt(v.Square())
	α := math.Atan2(v.Y, v.X)
	if α < 0 {
		α += 2 * math.Pi
	}
	return unit.Angle(α), unit.Angle(math.Asin(v.Z / m))
}
