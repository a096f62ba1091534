package locker

import "errors"

var (
	ErrLockerNotFound     = errors.New("locker not found")
	ErrAssignmentNotFound = errors.New("locker assignment not found")
	ErrLockerNumberTaken  = errors.New("locker number already assigned")
)
