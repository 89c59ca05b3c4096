package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"slices"
	"syscall"
)

// connectionErrs are failures of the connection to SQL Server, not of the statement itself.
var connectionErrs = []error{
	driver.ErrBadConn,
	syscall.ECONNRESET,
	syscall.ECONNREFUSED,
	syscall.EPIPE,
	io.EOF,
	io.ErrUnexpectedEOF,
}

func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if slices.ContainsFunc(connectionErrs, func(target error) bool { return errors.Is(err, target) }) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
