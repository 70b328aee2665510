// Package duration implements expiry timers for timed software sessions.
//
// A timed session (hzsync -for 10m) resets itself once its duration has
// elapsed. Timers are tracked per display: setting a new timer for a display
// replaces the old one, there is no stacking. Cancelling a timer never runs
// its expiry callback.
//
// Timers are not persisted. A process that exits before expiry leaves the
// session to the crash recovery reset.
package duration
