package errors

import (
	"context"
	stderrors "errors"
	"strings"
)

// NetworkErrorKind classifies a transport failure into a short metrics label.
func NetworkErrorKind(err error) string {
	if err == nil {
		return ""
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if stderrors.Is(err, context.Canceled) {
		return "canceled"
	}
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(errMsg, "connection refused"):
		return "connection_refused"
	case strings.Contains(errMsg, "EOF") || strings.Contains(errMsg, "connection reset"):
		return "connection_error"
	case strings.Contains(errMsg, "no such host") || strings.Contains(errMsg, "name resolution"):
		return "dns_error"
	case strings.Contains(errMsg, "certificate") || strings.Contains(errMsg, "tls"):
		return "tls_error"
	default:
		return "network_error"
	}
}
