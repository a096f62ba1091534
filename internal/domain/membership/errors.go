package membership

import "errors"

var (
	ErrPackageNotFound = errors.New("membership package not found")
	ErrInvalidPackage  = errors.New("invalid membership package")
	ErrInvalidDuration = errors.New("invalid membership duration")
)
