// Package version provides the program version and state format
// compatibility checks.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the release version. Release builds override it with
// -ldflags "-X github.com/hzsync/hzsync-go/pkg/version.Current=1.2".
var Current = "0.1"

// Version represents a parsed "major.minor" version.
type Version struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string. A leading "v" is accepted.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(s, "v"), ".")
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return Version{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return Version{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}

// Banner returns "<program> <version>" for -version output.
func Banner(program string) string {
	return program + " " + Current
}

// CheckStateFormat reports whether a state file written with format version
// got can be read by code that writes version want. Older formats are
// readable; newer ones are not.
func CheckStateFormat(got, want int) error {
	if got > want {
		return fmt.Errorf("state format %d is newer than supported format %d", got, want)
	}
	return nil
}
