package sheet

import (
	"errors"
	"fmt"
)

// ErrNetwork matches every *NetworkError through errors.Is.
var ErrNetwork = errors.New("network error")

// NetworkError reports a failed sheet download. StatusCode is zero when the
// transfer itself failed.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
