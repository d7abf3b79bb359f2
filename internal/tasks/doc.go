// package tasks implements the catalog's long-running operations: CSV import
// reconciliation and legacy genre migration.
//
// The core abstraction is ImportEngine, which classifies parsed CSV rows
// against a snapshot of the owner's record set, asks the caller how to
// resolve duplicates through an injected resolver, and drives best-effort
// creation against the record store. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks
