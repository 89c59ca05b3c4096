package wkt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terms(nodes []*Node) []Term {
	var out []Term
	for _, node := range nodes {
		out = append(out, node.Term)
	}
	return out
}

func TestParse_Point(t *testing.T) {
	root, err := Parse("POINT (100 0)")
	require.NoError(t, err)

	assert.Equal(t, TermRoot, root.Term)
	require.Len(t, root.Children, 1)

	geometry := root.Children[0]
	assert.Equal(t, TermGeometry, geometry.Term)
	assert.Equal(t, root, geometry.Parent)

	point := geometry.Children[0]
	assert.Equal(t, TermPoint, point.Term)
	assert.Equal(t, []Term{TermCoordSet}, terms(point.Children))
	assert.Equal(t, []float64{100, 0}, point.Children[0].Children[0].Numbers)
	assert.Equal(t, "POINT (100 0)", point.Text("POINT (100 0)"))
}

func TestParse_NegativeNumbers(t *testing.T) {
	src := "POLYGON ((-1.5 2.5, -1.5 -2.5, 1.5 -2.5, -1.5 2.5))"
	root, err := Parse(src)
	require.NoError(t, err)

	polygon := root.Children[0].Children[0]
	assert.Equal(t, TermPolygon, polygon.Term)

	multiCoordSet := polygon.Children[0]
	assert.Equal(t, TermMultiCoordSet, multiCoordSet.Term)
	require.Len(t, multiCoordSet.Children, 1)

	var numbers [][]float64
	for _, pair := range multiCoordSet.Children[0].Children {
		numbers = append(numbers, pair.Numbers)
	}
	assert.Equal(t, [][]float64{{-1.5, 2.5}, {-1.5, -2.5}, {1.5, -2.5}, {-1.5, 2.5}}, numbers)
}

func TestParse_Numbers(t *testing.T) {
	root, err := Parse("LINESTRING (+1 .5, 1e3 -2.5E-2, 10 20 30)")
	require.NoError(t, err)

	var numbers [][]float64
	for _, pair := range root.Children[0].Children[0].Children[0].Children {
		numbers = append(numbers, pair.Numbers)
	}
	assert.Equal(t, [][]float64{{1, 0.5}, {1000, -0.025}, {10, 20, 30}}, numbers)
}

func TestParse_GeometryCollection(t *testing.T) {
	src := "GEOMETRYCOLLECTION (POINT (1 2), MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5))), CURVEPOLYGON (CIRCULARSTRING (0 1, 1 0, 0 -1, -1 0, 0 1)))"
	root, err := Parse(src)
	require.NoError(t, err)

	collection := root.Children[0]
	assert.Equal(t, TermGeometryCollection, collection.Term)
	assert.Equal(t, []Term{TermGeometry, TermGeometry, TermGeometry}, terms(collection.Children))

	multiPolygon := collection.Children[1].Children[0]
	assert.Equal(t, []Term{TermMultiCoordSet, TermMultiCoordSet}, terms(multiPolygon.Children))

	circle := collection.Children[2].Children[0]
	assert.Equal(t, TermCircle, circle.Term)
	assert.Equal(t, "CURVEPOLYGON (CIRCULARSTRING (0 1, 1 0, 0 -1, -1 0, 0 1))", circle.Text(src))
	assert.Equal(t, 1, circle.Span.Line)
	assert.Equal(t, 97, circle.Span.Column)
}

func TestParse_Empty(t *testing.T) {
	root, err := Parse("GEOMETRYCOLLECTION EMPTY")
	require.NoError(t, err)
	assert.Equal(t, TermGeometryCollection, root.Children[0].Term)
	assert.Empty(t, root.Children[0].Children)
}

func TestParse_NestedGeometryCollection(t *testing.T) {
	root, err := Parse("GEOMETRYCOLLECTION (GEOMETRYCOLLECTION (POINT (1 2)), POINT (3 4))")
	require.NoError(t, err)

	nested := root.Children[0].Children[0].Children[0]
	assert.Equal(t, TermGeometryCollection, nested.Term)
	assert.Equal(t, TermGeometry, nested.Parent.Term)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		message string
		line    int
		column  int
	}{
		{"empty input", "", "syntax error, expected a geometry keyword but found end of input", 1, 1},
		{"lowercase keyword", "point (1 2)", `syntax error, expected a geometry keyword but found "point"`, 1, 1},
		{"missing bracket", "POINT 1 2", `syntax error, expected "(" but found number 1`, 1, 7},
		{"single number", "POINT (1)", `syntax error, expected a number but found ")"`, 1, 9},
		{"unclosed", "LINESTRING (1 2, 3 4", `syntax error, expected ")" but found end of input`, 1, 21},
		{"trailing", "POINT (1 2) POINT (3 4)", `syntax error, expected end of input but found "POINT"`, 1, 13},
		{"second line", "GEOMETRYCOLLECTION (\nPOINT (1 2),\nFOO (1 2))", `syntax error, expected a geometry keyword but found "FOO"`, 3, 1},
		{"circle without circular string", "CURVEPOLYGON ((1 2, 3 4))", `syntax error, expected "CIRCULARSTRING" but found "("`, 1, 15},
		{"invalid character", "POINT (1 2);", `invalid character ';'`, 1, 12},
		{"malformed number", "POINT (- 2)", "malformed number", 1, 8},
		{"two decimal points", "POINT (1.2.3)", "malformed number", 1, 8},
		{"number glued to a keyword", "POINT (1 2EMPTY)", "malformed number", 1, 10},
		{"number glued to a bracket", "LINESTRING (1 2(3 4))", "malformed number", 1, 15},
	}

	for _, testCase := range testCases {
		_, err := Parse(testCase.src)
		assert.Error(t, err, testCase.name)

		parseErr, ok := BuildParseError(err)
		require.True(t, ok, testCase.name)
		assert.Equal(t, testCase.message, parseErr.Message(), testCase.name)
		assert.Equal(t, testCase.line, parseErr.Line(), testCase.name)
		assert.Equal(t, testCase.column, parseErr.Column(), testCase.name)
		assert.Equal(t, fmt.Sprintf("%s, (%d:%d)", testCase.message, testCase.line, testCase.column), err.Error(), testCase.name)
	}
}

func TestConstruct(t *testing.T) {
	var order []Term
	record := func(node *Node) error {
		order = append(order, node.Term)
		return nil
	}

	hooks := Hooks{
		TermCoordPair: func(node *Node) error {
			node.Value = node.Numbers[0] + node.Numbers[1]
			return record(node)
		},
		TermCoordSet: func(node *Node) error {
			sums, err := Collect[float64](node, TermCoordPair)
			if err != nil {
				return err
			}
			node.Value = sums
			return record(node)
		},
		TermLineString: func(node *Node) error {
			sums, err := First[[]float64](node, TermCoordSet)
			if err != nil {
				return err
			}
			node.Value = sums
			return record(node)
		},
		TermGeometry: func(node *Node) error {
			node.Value = node.Children[0].Value
			return record(node)
		},
		TermRoot: func(node *Node) error {
			node.Value = node.Children[0].Value
			return record(node)
		},
	}

	value, err := ParseWith("LINESTRING (1 2, 3 4)", hooks)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, value)
	assert.Equal(t, []Term{TermCoordPair, TermCoordPair, TermCoordSet, TermLineString, TermGeometry, TermRoot}, order)
}

func TestConstruct_HookErrorsStopConstruction(t *testing.T) {
	var reachedRoot bool
	hooks := Hooks{
		TermCircle: func(node *Node) error {
			return node.Errorf("circles are not welcome here")
		},
		TermRoot: func(node *Node) error {
			reachedRoot = true
			return nil
		},
	}

	_, err := ParseWith("GEOMETRYCOLLECTION (POINT (1 2), CURVEPOLYGON (CIRCULARSTRING (0 1, 1 0, 0 1)))", hooks)
	assert.ErrorContains(t, err, "circles are not welcome here, (1:34)")
	assert.False(t, reachedRoot)
}

func TestConstruct_SyntaxErrorsRunNoHooks(t *testing.T) {
	var called bool
	hooks := Hooks{
		TermPoint: func(node *Node) error {
			called = true
			return nil
		},
	}

	_, err := ParseWith("GEOMETRYCOLLECTION (POINT (1 2), POINT (1 2)", hooks)
	assert.True(t, IsParseError(err))
	assert.False(t, called)
}

func TestCollect_TypeMismatch(t *testing.T) {
	root, err := Parse("POINT (1 2)")
	require.NoError(t, err)

	_, err = Construct(root, Hooks{TermCoordPair: func(node *Node) error {
		node.Value = "not a number"
		return nil
	}})
	require.NoError(t, err)

	_, err = Collect[float64](root, TermCoordPair)
	assert.ErrorContains(t, err, "expected coordPair value of type float64, got string")

	_, err = First[float64](root, TermMultiCoordSet)
	assert.ErrorContains(t, err, "root has no multiCoordSet")
}

func TestTerm_String(t *testing.T) {
	assert.Equal(t, "multipolygon", TermMultiPolygon.String())
	assert.Equal(t, "term(99)", Term(99).String())
}
