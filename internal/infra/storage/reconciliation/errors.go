package reconciliation

import "errors"

var (
	// ErrItemNotFound is returned when no open item has the id
	ErrItemNotFound = errors.New("reconciliation.repository: item not found")

	ErrBuildQuery = errors.New("reconciliation.repository: failed to build query")
	ErrExecQuery  = errors.New("reconciliation.repository: failed to execute query")
	ErrScanRow    = errors.New("reconciliation.repository: failed to scan row")
)
