package dashboard

import "errors"

var (
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
)
