package wkt

import "fmt"

const (
	KeywordPoint              = "POINT"
	KeywordMultiPoint         = "MULTIPOINT"
	KeywordLineString         = "LINESTRING"
	KeywordMultiLineString    = "MULTILINESTRING"
	KeywordPolygon            = "POLYGON"
	KeywordMultiPolygon       = "MULTIPOLYGON"
	KeywordGeometryCollection = "GEOMETRYCOLLECTION"
	KeywordCurvePolygon       = "CURVEPOLYGON"
	KeywordCircularString     = "CIRCULARSTRING"
	KeywordEmpty              = "EMPTY"
)

// geometryTerms maps the keyword opening a geometry to the term it produces.
var geometryTerms = map[string]Term{
	KeywordPoint:              TermPoint,
	KeywordMultiPoint:         TermMultiPoint,
	KeywordLineString:         TermLineString,
	KeywordMultiLineString:    TermMultiLineString,
	KeywordPolygon:            TermPolygon,
	KeywordMultiPolygon:       TermMultiPolygon,
	KeywordCurvePolygon:       TermCircle,
	KeywordGeometryCollection: TermGeometryCollection,
}

type parser struct {
	lex *lexer
	cur token
	// end is the offset right after the last consumed token.
	end int
}

// Parse turns geography text into a parse tree. No hooks are run; see [Construct].
func Parse(src string) (*Node, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	root := p.open(TermRoot)
	if p.cur.kind == tokenKeyword && p.cur.text == KeywordGeometryCollection {
		child, err := p.parseGeometryCollection()
		if err != nil {
			return nil, err
		}
		root.appendChild(child)
	} else {
		child, err := p.parseGeometry()
		if err != nil {
			return nil, err
		}
		root.appendChild(child)
	}

	if p.cur.kind != tokenEOF {
		return nil, p.unexpected("end of input")
	}

	p.close(root)
	return root, nil
}

func (p *parser) advance() error {
	p.end = p.cur.pos + len(p.cur.text)

	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.cur = tok
	return nil
}

func (p *parser) open(term Term) *Node {
	return &Node{
		Term: term,
		Span: Span{Position: p.cur.pos, Line: p.cur.line, Column: p.cur.column},
	}
}

func (p *parser) close(n *Node) {
	n.Span.Length = p.end - n.Span.Position
}

func (p *parser) unexpected(expected string) ParseError {
	return NewParseError(fmt.Sprintf("syntax error, expected %s but found %s", expected, p.cur.describe()), p.cur.line, p.cur.column)
}

func (p *parser) expect(kind tokenKind, text string) error {
	if p.cur.kind != kind || (text != "" && p.cur.text != text) {
		return p.unexpected(fmt.Sprintf("%q", text))
	}

	return p.advance()
}

func (p *parser) expectKeyword(keyword string) error {
	return p.expect(tokenKeyword, keyword)
}

func (p *parser) parseGeometry() (*Node, error) {
	node := p.open(TermGeometry)

	term, ok := geometryTerms[p.cur.text]
	if p.cur.kind != tokenKeyword || !ok {
		return nil, p.unexpected("a geometry keyword")
	}

	var child *Node
	var err error
	switch term {
	case TermPoint:
		child, err = p.parseTagged(TermPoint, KeywordPoint, p.parseCoordSet)
	case TermMultiPoint:
		child, err = p.parseTagged(TermMultiPoint, KeywordMultiPoint, p.parseMultiCoordSet)
	case TermLineString:
		child, err = p.parseTagged(TermLineString, KeywordLineString, p.parseCoordSet)
	case TermMultiLineString:
		child, err = p.parseTagged(TermMultiLineString, KeywordMultiLineString, p.parseMultiCoordSet)
	case TermPolygon:
		child, err = p.parseTagged(TermPolygon, KeywordPolygon, p.parseMultiCoordSet)
	case TermMultiPolygon:
		child, err = p.parseMultiPolygon()
	case TermCircle:
		child, err = p.parseCircle()
	case TermGeometryCollection:
		child, err = p.parseGeometryCollection()
	}

	if err != nil {
		return nil, err
	}

	node.appendChild(child)
	p.close(node)
	return node, nil
}

// parseTagged parses `KEYWORD body`.
func (p *parser) parseTagged(term Term, keyword string, body func() (*Node, error)) (*Node, error) {
	node := p.open(term)
	if err := p.expectKeyword(keyword); err != nil {
		return nil, err
	}

	child, err := body()
	if err != nil {
		return nil, err
	}

	node.appendChild(child)
	p.close(node)
	return node, nil
}

// parseList parses `"(" item ("," item)* ")"` and appends every item to parent.
func (p *parser) parseList(parent *Node, item func() (*Node, error)) error {
	if err := p.expect(tokenOpen, "("); err != nil {
		return err
	}

	for {
		child, err := item()
		if err != nil {
			return err
		}
		parent.appendChild(child)

		if p.cur.kind != tokenComma {
			break
		}

		if err = p.advance(); err != nil {
			return err
		}
	}

	return p.expect(tokenClose, ")")
}

func (p *parser) parseGeometryCollection() (*Node, error) {
	node := p.open(TermGeometryCollection)
	if err := p.expectKeyword(KeywordGeometryCollection); err != nil {
		return nil, err
	}

	if p.cur.kind == tokenKeyword && p.cur.text == KeywordEmpty {
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else if err := p.parseList(node, p.parseGeometry); err != nil {
		return nil, err
	}

	p.close(node)
	return node, nil
}

func (p *parser) parseMultiPolygon() (*Node, error) {
	node := p.open(TermMultiPolygon)
	if err := p.expectKeyword(KeywordMultiPolygon); err != nil {
		return nil, err
	}

	if err := p.parseList(node, p.parseMultiCoordSet); err != nil {
		return nil, err
	}

	p.close(node)
	return node, nil
}

func (p *parser) parseCircle() (*Node, error) {
	node := p.open(TermCircle)
	if err := p.expectKeyword(KeywordCurvePolygon); err != nil {
		return nil, err
	}

	if err := p.expect(tokenOpen, "("); err != nil {
		return nil, err
	}

	if err := p.expectKeyword(KeywordCircularString); err != nil {
		return nil, err
	}

	coordSet, err := p.parseCoordSet()
	if err != nil {
		return nil, err
	}
	node.appendChild(coordSet)

	if err = p.expect(tokenClose, ")"); err != nil {
		return nil, err
	}

	p.close(node)
	return node, nil
}

func (p *parser) parseMultiCoordSet() (*Node, error) {
	node := p.open(TermMultiCoordSet)
	if err := p.parseList(node, p.parseCoordSet); err != nil {
		return nil, err
	}

	p.close(node)
	return node, nil
}

func (p *parser) parseCoordSet() (*Node, error) {
	node := p.open(TermCoordSet)
	if err := p.parseList(node, p.parseCoordPair); err != nil {
		return nil, err
	}

	p.close(node)
	return node, nil
}

// parseCoordPair reads two numbers and an optional altitude.
func (p *parser) parseCoordPair() (*Node, error) {
	node := p.open(TermCoordPair)
	for len(node.Numbers) < 3 {
		if p.cur.kind != tokenNumber {
			if len(node.Numbers) < 2 {
				return nil, p.unexpected("a number")
			}
			break
		}

		node.Numbers = append(node.Numbers, p.cur.number)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	p.close(node)
	return node, nil
}
