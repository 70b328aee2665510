// Package brightness reads and writes display brightness through pluggable
// providers.
//
// Providers differ in reach: the sysfs backlight interface and brightnessctl
// only drive internal panels, while a gamma-based provider works on any
// output. A Prober tries providers in order for each display and caches the
// first one whose Probe succeeds for the rest of the process.
//
// Levels are normalized to [0, 1].
package brightness
