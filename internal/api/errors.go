package api

import (
	"errors"
	"fmt"
)

// GatewayError marks a failed call to the persistence or issue-tracker
// gateway: connection failure, non-2xx response, or malformed body.
// Callers treat it as non-fatal to local state.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

// IsGateway reports whether err is (or wraps) a GatewayError.
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
