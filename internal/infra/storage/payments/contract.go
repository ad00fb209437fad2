package payments

import "github.com/m04kA/mehndi-booking-service/pkg/dbmetrics"

// DBExecutor is satisfied by *sql.DB and *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
