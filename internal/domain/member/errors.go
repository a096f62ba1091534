package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidPhoto   = errors.New("invalid photo upload")
)
