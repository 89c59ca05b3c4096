package geography

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/twpayne/go-geom"
)

// PointAt returns a POINT geography.
func PointAt(lat, lon float64, srid int) *Geography {
	return &Geography{kind: TypePoint, srid: srid, figures: [][]geom.Coord{{{lon, lat}}}}
}

func (g *Geography) point() (orb.Point, error) {
	if g.kind != TypePoint || g.IsEmpty() {
		return orb.Point{}, fmt.Errorf("expected a non-empty POINT, got %s", g.kind)
	}

	coord := g.figures[0][0]
	return orb.Point{coord.X(), coord.Y()}, nil
}

// LatLon returns the latitude and longitude of a POINT.
func (g *Geography) LatLon() (float64, float64, error) {
	p, err := g.point()
	if err != nil {
		return 0, 0, err
	}

	return p.Lat(), p.Lon(), nil
}

// normalizeLon maps lon into [-180, 180].
func normalizeLon(lon float64) float64 {
	return math.Remainder(lon, 360)
}

// BufferWithCurves approximates the area within radius meters of a POINT as a circular arc through the
// points due north, east, south and west of it. Circles reaching a pole are rejected, their north or south
// point would land on the far side of the globe.
func (g *Geography) BufferWithCurves(radius float64) (*Geography, error) {
	center, err := g.point()
	if err != nil {
		return nil, fmt.Errorf("failed to buffer geography: %w", err)
	}

	if radius <= 0 {
		return nil, fmt.Errorf("buffer radius must be positive, got %v", radius)
	}

	reach := radius / orb.EarthRadius * 180 / math.Pi
	if math.Abs(center.Lat())+reach >= 90 {
		return nil, fmt.Errorf("a buffer of %v meters around (%v %v) reaches a pole", radius, center.Lon(), center.Lat())
	}

	figure := make([]geom.Coord, 0, 5)
	for _, bearing := range []float64{0, 90, 180, 270, 0} {
		p := geo.PointAtBearingAndDistance(center, bearing, radius)
		figure = append(figure, geom.Coord{normalizeLon(p.Lon()), p.Lat()})
	}

	return &Geography{kind: TypeCurvePolygon, srid: g.srid, figures: [][]geom.Coord{figure}}, nil
}

func (g *Geography) collect(points orb.MultiPoint) orb.MultiPoint {
	for _, figure := range g.figures {
		for _, coord := range figure {
			points = append(points, orb.Point{coord.X(), coord.Y()})
		}
	}

	for _, member := range g.members {
		points = member.collect(points)
	}

	return points
}

// EnvelopeCenter returns the center of the bounding box of every position of g.
// Longitudes are unwrapped around the first position so that a shape straddling the antimeridian keeps its
// center next to it instead of on the far side of the globe.
func (g *Geography) EnvelopeCenter() (*Geography, error) {
	points := g.collect(nil)
	if len(points) == 0 {
		return nil, fmt.Errorf("cannot compute the envelope center of an empty %s", g.kind)
	}

	origin := points[0].Lon()
	for i, p := range points {
		points[i][0] = origin + normalizeLon(p.Lon()-origin)
	}

	center := points.Bound().Center()
	return PointAt(center.Lat(), normalizeLon(center.Lon()), g.srid), nil
}

// StartPoint returns the first position of g as a POINT.
func (g *Geography) StartPoint() (*Geography, error) {
	points := g.collect(nil)
	if len(points) == 0 {
		return nil, fmt.Errorf("an empty %s has no start point", g.kind)
	}

	return PointAt(points[0].Lat(), points[0].Lon(), g.srid), nil
}

// Distance returns the great circle distance in meters between two POINTs.
func (g *Geography) Distance(other *Geography) (float64, error) {
	from, err := g.point()
	if err != nil {
		return 0, fmt.Errorf("failed to compute distance: %w", err)
	}

	to, err := other.point()
	if err != nil {
		return 0, fmt.Errorf("failed to compute distance: %w", err)
	}

	return geo.DistanceHaversine(from, to), nil
}
