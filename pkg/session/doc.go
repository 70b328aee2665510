// Package session keeps the process-wide record of software cadence
// sessions and action settings.
//
// Every mutation is written to the state file immediately. A failed write
// is reported as ErrPersistenceFailed but the in-memory state stays
// authoritative for the rest of the process.
package session
