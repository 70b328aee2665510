// Package cadence emulates a refresh rate in software.
//
// A Driver owns at most one Session per display. A session runs a
// free-running ticker with period 1/rate and invokes its actions in order on
// every tick. Per display the lifecycle is:
//
//	Idle --Arm--> Armed --Start--> Running --Reset/Shutdown--> Idle
//
// Arming a display that already has a session tears the old one down first.
// Teardown is synchronous: the ticker is stopped and the tick goroutine has
// returned before any action is released, so released state (such as the
// original brightness) is never overwritten by a late tick.
//
// Action failures and panics never stop a session. They are logged, counted,
// and substituted by a short beep.
package cadence
