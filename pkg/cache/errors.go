package cache

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks failures to reach a remote cache backend. Callers
// treat it as a miss and carry on without the cache.
var ErrUnavailable = errors.New("cache backend unavailable")

func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
