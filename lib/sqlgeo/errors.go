package sqlgeo

import "errors"

// PreconditionError is returned when a [Converter] is used before [Converter.Configure] was called.
type PreconditionError struct {
	message string
}

func NewPreconditionError(message string) PreconditionError {
	return PreconditionError{message: message}
}

func (p PreconditionError) Error() string {
	return p.message
}

func IsPreconditionError(err error) bool {
	return errors.As(err, &PreconditionError{})
}

// UnsupportedShapeError is returned when geography text holds a shape the configured [Style] cannot represent.
type UnsupportedShapeError struct {
	message string
}

func NewUnsupportedShapeError(message string) UnsupportedShapeError {
	return UnsupportedShapeError{message: message}
}

func (u UnsupportedShapeError) Error() string {
	return u.message
}

func IsUnsupportedShapeError(err error) bool {
	return errors.As(err, &UnsupportedShapeError{})
}
