package geography

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// Builder assembles a [Geography] from a sequence of begin/end calls:
//
//	b.BeginGeography(TypePolygon)
//	b.BeginFigure(lat, lon, nil)
//	b.AddLine(lat, lon, nil)
//	b.EndFigure()
//	b.EndGeography()
//
// The first protocol violation is recorded and returned by [Builder.ConstructedGeography]; later calls are ignored.
type Builder struct {
	srid    int
	stack   []*Geography
	figure  []geom.Coord
	open    bool
	started bool
	result  *Geography
	err     error
}

func NewBuilder(srid int) *Builder {
	return &Builder{srid: srid}
}

func (b *Builder) SetSRID(srid int) {
	b.srid = srid
}

// Started returns true once [Builder.BeginGeography] has been called.
func (b *Builder) Started() bool {
	return b.started
}

func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
}

func (b *Builder) top() *Geography {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) BeginGeography(kind Type) {
	if b.err != nil {
		return
	}

	if b.result != nil {
		b.fail("cannot begin %s: geography has already been constructed", kind)
		return
	}

	if parent := b.top(); parent != nil && !parent.kind.allowsMember(kind) {
		b.fail("cannot begin %s inside %s", kind, parent.kind)
		return
	}

	if kind == TypeUnknown {
		b.fail("cannot begin a geography of unknown type")
		return
	}

	b.started = true
	b.stack = append(b.stack, &Geography{kind: kind, srid: b.srid})
}

func (b *Builder) BeginFigure(lat, lon float64, alt *float64) {
	if b.err != nil {
		return
	}

	current := b.top()
	switch {
	case current == nil:
		b.fail("cannot begin a figure outside of a geography")
		return
	case !current.kind.hasFigures():
		b.fail("cannot begin a figure inside %s", current.kind)
		return
	case b.open:
		b.fail("cannot begin a figure before the previous one is ended")
		return
	case current.kind == TypePoint && len(current.figures) > 0:
		b.fail("a POINT has exactly one position")
		return
	}

	b.open = true
	b.figure = []geom.Coord{position(lat, lon, alt)}
}

func (b *Builder) AddLine(lat, lon float64, alt *float64) {
	if b.err != nil {
		return
	}

	if !b.open {
		b.fail("cannot add a line outside of a figure")
		return
	}

	if b.top().kind == TypePoint {
		b.fail("a POINT has exactly one position")
		return
	}

	b.figure = append(b.figure, position(lat, lon, alt))
}

func (b *Builder) EndFigure() {
	if b.err != nil {
		return
	}

	if !b.open {
		b.fail("cannot end a figure that was never begun")
		return
	}

	current := b.top()
	current.figures = append(current.figures, b.figure)
	b.figure = nil
	b.open = false
}

func (b *Builder) EndGeography() {
	if b.err != nil {
		return
	}

	current := b.top()
	if current == nil {
		b.fail("cannot end a geography that was never begun")
		return
	}

	if b.open {
		b.fail("cannot end %s while a figure is open", current.kind)
		return
	}

	b.stack = b.stack[:len(b.stack)-1]
	if parent := b.top(); parent != nil {
		parent.members = append(parent.members, current)
	} else {
		b.result = current
	}
}

// ConstructedGeography returns the finished geography, or the first protocol error.
func (b *Builder) ConstructedGeography() (*Geography, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.result == nil {
		return nil, fmt.Errorf("geography is incomplete, %d geographies still open", len(b.stack))
	}

	return b.result, nil
}

func position(lat, lon float64, alt *float64) geom.Coord {
	if alt != nil {
		return geom.Coord{lon, lat, *alt}
	}
	return geom.Coord{lon, lat}
}
