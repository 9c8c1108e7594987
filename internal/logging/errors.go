package logging

// ErrorKind labels an upstream outcome for logs and metrics.
// A transport failure has no status and reports as network_error.
func ErrorKind(status int, hasErr bool) string {
	switch {
	case status == 0 && hasErr:
		return "network_error"
	case status == 401, status == 403, status == 429:
		return fmtStatus(status)
	case status >= 500:
		return "upstream_5xx"
	case status >= 400:
		return "upstream_4xx"
	case hasErr:
		return "error"
	}
	return "ok"
}

func fmtStatus(status int) string {
	switch status {
	case 401:
		return "upstream_401"
	case 403:
		return "upstream_403"
	}
	return "upstream_429"
}
