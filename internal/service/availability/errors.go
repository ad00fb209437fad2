package availability

import "errors"

// ErrCheckFailed is returned when the calendar could not be read
var ErrCheckFailed = errors.New("availability: check failed")
