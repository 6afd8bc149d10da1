// Package database provides SQLite connectivity for Gray Logic Hub.
//
// The hub keeps no device state across runs. The database only holds
// history: strategy execution records and the audit trail of hub events.
//
// Migrations are embedded SQL files applied in version order, each in its
// own transaction, and tracked in schema_migrations.
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
