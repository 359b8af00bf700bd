package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// gatewayError classifies a non-2xx SMS gateway answer. The gateway body is
// kept in the message since it usually names the rejected field.
func gatewayError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	reason := strings.TrimSpace(string(resp.Body()))
	if reason == "" {
		reason = http.StatusText(code)
	}

	var kind error
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		kind = ErrGatewayAuth
	case code == http.StatusTooManyRequests:
		kind = ErrGatewayThrottled
	case code >= http.StatusInternalServerError:
		kind = ErrGatewayUnavailable
	default:
		kind = ErrGatewayRejected
	}

	return fmt.Errorf("%w (status %d): %s", kind, code, reason)
}
