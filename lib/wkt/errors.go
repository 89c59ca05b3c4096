package wkt

import (
	"errors"
	"fmt"
)

// ParseError is returned when text does not match the geography grammar, or when a hook rejects a node.
// Line and Column are 1-based.
type ParseError struct {
	message string
	line    int
	column  int
}

func NewParseError(message string, line, column int) ParseError {
	return ParseError{message: message, line: line, column: column}
}

func (p ParseError) Error() string {
	return fmt.Sprintf("%s, (%d:%d)", p.message, p.line, p.column)
}

func (p ParseError) Message() string {
	return p.message
}

func (p ParseError) Line() int {
	return p.line
}

func (p ParseError) Column() int {
	return p.column
}

func IsParseError(err error) bool {
	return errors.As(err, &ParseError{})
}

func BuildParseError(err error) (ParseError, bool) {
	var parseError ParseError
	if errors.As(err, &parseError) {
		return parseError, true
	}

	return ParseError{}, false
}
