package wkt

import "fmt"

// Term identifies the grammar rule a [Node] was produced by.
type Term int

const (
	TermRoot Term = iota
	TermGeometryCollection
	TermGeometry
	TermPoint
	TermMultiPoint
	TermLineString
	TermMultiLineString
	TermPolygon
	TermMultiPolygon
	TermCircle
	TermMultiCoordSet
	TermCoordSet
	TermCoordPair
)

var termNames = [...]string{
	TermRoot:               "root",
	TermGeometryCollection: "geometryCollection",
	TermGeometry:           "geometry",
	TermPoint:              "point",
	TermMultiPoint:         "multipoint",
	TermLineString:         "linestring",
	TermMultiLineString:    "multilinestring",
	TermPolygon:            "polygon",
	TermMultiPolygon:       "multipolygon",
	TermCircle:             "circle",
	TermMultiCoordSet:      "multiCoordSet",
	TermCoordSet:           "coordSet",
	TermCoordPair:          "coordPair",
}

func (t Term) String() string {
	if t < 0 || int(t) >= len(termNames) {
		return fmt.Sprintf("term(%d)", int(t))
	}
	return termNames[t]
}

// Span locates a node in the parsed source. Position and Length are byte offsets.
type Span struct {
	Position int
	Length   int
	Line     int
	Column   int
}

// Node is a parse tree node. Value is filled in by the [Hook] registered for Term.
type Node struct {
	Term     Term
	Children []*Node
	Parent   *Node
	Span     Span
	// Numbers holds the coordinates of a [TermCoordPair] in source order.
	Numbers []float64
	Value   any
}

// Text returns the exact source text spanned by n.
func (n *Node) Text(src string) string {
	return src[n.Span.Position : n.Span.Position+n.Span.Length]
}

// Errorf returns a [ParseError] located at n.
func (n *Node) Errorf(format string, args ...any) ParseError {
	return NewParseError(fmt.Sprintf(format, args...), n.Span.Line, n.Span.Column)
}

func (n *Node) appendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Hook builds the value of a node once all of its children have their values.
type Hook func(node *Node) error

// Hooks are keyed by the term they construct.
type Hooks map[Term]Hook

// Construct runs hooks over the tree in post-order and returns the value of root.
// Nodes whose term has no hook keep a nil value.
func Construct(root *Node, hooks Hooks) (any, error) {
	if err := construct(root, hooks); err != nil {
		return nil, err
	}

	return root.Value, nil
}

func construct(node *Node, hooks Hooks) error {
	for _, child := range node.Children {
		if err := construct(child, hooks); err != nil {
			return err
		}
	}

	if hook, ok := hooks[node.Term]; ok {
		return hook(node)
	}

	return nil
}

// ParseWith parses src and constructs its value with hooks.
func ParseWith(src string, hooks Hooks) (any, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return Construct(root, hooks)
}

// Collect returns the values of the outermost descendants of n produced by term, in source order.
func Collect[T any](n *Node, term Term) ([]T, error) {
	var values []T
	for _, child := range n.Children {
		if child.Term != term {
			nested, err := Collect[T](child, term)
			if err != nil {
				return nil, err
			}

			values = append(values, nested...)
			continue
		}

		value, ok := child.Value.(T)
		if !ok {
			var zero T
			return nil, child.Errorf("expected %s value of type %T, got %T", term, zero, child.Value)
		}

		values = append(values, value)
	}

	return values, nil
}

// First returns the value of the first descendant of n produced by term.
func First[T any](n *Node, term Term) (T, error) {
	values, err := Collect[T](n, term)
	if err != nil {
		var zero T
		return zero, err
	}

	if len(values) == 0 {
		var zero T
		return zero, n.Errorf("%s has no %s", n.Term, term)
	}

	return values[0], nil
}
