// Package action provides the side effects a software cadence session runs
// on every tick.
//
// An Action is armed once before ticking starts, ticked from the session's
// tick goroutine, and released after ticking has stopped. Release must undo
// whatever Arm and Tick changed on the device.
//
// Click starts an independent sound playback per tick and tracks live
// playbacks in a bounded Pool. BrightnessPulse toggles a display's
// brightness on alternate ticks and restores the armed level on release.
package action
