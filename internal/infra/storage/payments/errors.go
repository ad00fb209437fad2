package payments

import "errors"

var (
	// ErrPaymentNotFound is returned when the ledger has no row for the payment
	ErrPaymentNotFound = errors.New("payments.repository: payment not found")

	// ErrBuildQuery is returned when a query cannot be built
	ErrBuildQuery = errors.New("payments.repository: failed to build query")

	// ErrExecQuery is returned when a query fails
	ErrExecQuery = errors.New("payments.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be read
	ErrScanRow = errors.New("payments.repository: failed to scan row")
)
