// Package persistence stores hzsync's runtime state as a JSON file.
//
// The state records which displays had a software cadence session at the
// last save, the action settings, and the brightness levels captured before
// pulsing, so that a later invocation can detect and reset leftovers.
package persistence
