package billing

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrEntryNotFound      = errors.New("ledger entry not found")
	ErrDeviceSyncFailed   = errors.New("access device sync failed")
)
