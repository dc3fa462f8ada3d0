package booking

import "errors"

var ErrBookingNotFound = errors.New("booking not found")

var ErrMissingBookingNumber = errors.New("booking number is required")
