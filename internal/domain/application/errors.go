package application

import "errors"

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrPhonePending        = errors.New("an application for this phone is already pending")
)
