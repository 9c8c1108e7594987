package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSONKeepsNullParamAndCode(t *testing.T) {
	payload, err := New(http.StatusInternalServerError, "upstream_error", ErrorTypeInvalidRequest, "boom").ToJSON()
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	body := decoded["error"]
	require.Equal(t, "boom", body["message"])
	require.Equal(t, "invalid_request_error", body["type"])
	require.Contains(t, body, "param")
	require.Nil(t, body["param"])
	require.Contains(t, body, "code")
	require.Nil(t, body["code"])
}

func TestFromErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("decode: %w", ErrMalformedRequest), http.StatusBadRequest, "invalid_request"},
		{ErrAllMessagesEmpty, http.StatusBadRequest, "empty_messages"},
		{ErrUnsupportedFormat, http.StatusBadRequest, "unsupported_format"},
		{fmt.Errorf("sign: %w", ErrCredential), http.StatusInternalServerError, "credential_error"},
		{&UpstreamStatusError{StatusCode: 429}, http.StatusInternalServerError, "upstream_error"},
		{fmt.Errorf("random"), http.StatusInternalServerError, "server_error"},
	}
	for _, tc := range cases {
		apiErr := FromError(tc.err)
		if apiErr.HTTPStatus != tc.status || apiErr.Code != tc.code {
			t.Fatalf("%v: got %d/%s want %d/%s", tc.err, apiErr.HTTPStatus, apiErr.Code, tc.status, tc.code)
		}
		require.Equal(t, ErrorTypeInvalidRequest, apiErr.Type)
	}
}

func TestUpstreamStatusErrorMessage(t *testing.T) {
	apiErr := FromError(&UpstreamStatusError{StatusCode: 503})
	require.Equal(t, "upstream returned status 503", apiErr.Message)
}

func TestNetworkErrorKind(t *testing.T) {
	require.Equal(t, "timeout", NetworkErrorKind(context.DeadlineExceeded))
	require.Equal(t, "canceled", NetworkErrorKind(fmt.Errorf("do: %w", context.Canceled)))
	require.Equal(t, "connection_refused", NetworkErrorKind(fmt.Errorf("dial tcp: connection refused")))
	require.Equal(t, "dns_error", NetworkErrorKind(fmt.Errorf("lookup x: no such host")))
	require.Equal(t, "", NetworkErrorKind(nil))
}
