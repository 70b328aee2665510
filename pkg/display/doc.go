// Package display defines the display subsystem model used by hzsync.
//
// A display is identified by an opaque ID and exposes a list of Modes, each a
// hardware-advertised (width, height, refresh rate) tuple. The package also
// defines the collaborator interfaces the rest of the module relies on:
//
//   - Enumerator lists active displays and their current and supported modes.
//   - Configurator commits a mode inside a begin/configure/commit transaction.
//   - TimingInjector pushes synthetic timing parameters through the platform's
//     low-level display-property path.
//
// Concrete backends live in subpackages (xrandr, simulated). Nothing in this
// package talks to hardware.
//
// # Custom Timing
//
// ComputeTiming derives blanking intervals and a pixel clock for a target rate.
// Displays at least 1920 pixels wide use 20% horizontal and 5% vertical
// blanking; narrower displays use 25% and 8%.
package display
