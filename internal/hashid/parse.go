package hashid

import (
	"fmt"
	"strconv"
)

// ParseID converts a raw identifier, such as a URL path segment, into a
// value that can be encoded. Only base 10 digits are accepted: signs,
// decimal points, exponents and values beyond int64 fail with
// ErrInvalidInput.
func ParseID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty id", ErrInvalidInput)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidInput, raw)
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidInput, raw)
	}
	return id, nil
}
