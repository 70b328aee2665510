package brightness

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// DefaultBacklightRoot is the Linux backlight class directory.
const DefaultBacklightRoot = "/sys/class/backlight"

// Sysfs drives the kernel backlight interface directly. Writing requires
// permission on the brightness file (udev rule or video group).
type Sysfs struct {
	// Root is the backlight class directory. Default: DefaultBacklightRoot.
	Root string

	// Device selects a backlight device by name. Empty picks the first one.
	Device string
}

// Name returns "sysfs".
func (s *Sysfs) Name() string {
	return "sysfs"
}

func (s *Sysfs) root() string {
	if s.Root == "" {
		return DefaultBacklightRoot
	}
	return s.Root
}

// device returns the backlight device directory for id.
func (s *Sysfs) device(id display.ID) (string, error) {
	if !IsInternal(id) {
		return "", fmt.Errorf("%s is not an internal panel: %w", id, display.ErrUnsupported)
	}
	if s.Device != "" {
		return filepath.Join(s.root(), s.Device), nil
	}
	entries, err := os.ReadDir(s.root())
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no backlight device in %s: %w", s.root(), display.ErrUnsupported)
	}
	sort.Strings(names)
	return filepath.Join(s.root(), names[0]), nil
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func (s *Sysfs) levels(id display.ID) (dir string, cur, maxLevel int, err error) {
	dir, err = s.device(id)
	if err != nil {
		return "", 0, 0, err
	}
	maxLevel, err = readInt(filepath.Join(dir, "max_brightness"))
	if err != nil {
		return "", 0, 0, err
	}
	if maxLevel <= 0 {
		return "", 0, 0, fmt.Errorf("%s: max_brightness is %d", dir, maxLevel)
	}
	cur, err = readInt(filepath.Join(dir, "brightness"))
	if err != nil {
		return "", 0, 0, err
	}
	return dir, cur, maxLevel, nil
}

// Probe checks that a backlight device is readable and writable.
func (s *Sysfs) Probe(id display.ID) error {
	dir, _, _, err := s.levels(id)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "brightness"), os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// Get returns brightness/max_brightness.
func (s *Sysfs) Get(id display.ID) (float64, error) {
	_, cur, maxLevel, err := s.levels(id)
	if err != nil {
		return 0, err
	}
	return Clamp(float64(cur) / float64(maxLevel)), nil
}

// Set writes round(level*max_brightness).
func (s *Sysfs) Set(id display.ID, level float64) error {
	if err := CheckLevel(level); err != nil {
		return err
	}
	dir, _, maxLevel, err := s.levels(id)
	if err != nil {
		return err
	}
	raw := int(math.Round(level * float64(maxLevel)))
	return os.WriteFile(filepath.Join(dir, "brightness"), []byte(strconv.Itoa(raw)), 0)
}

var _ Provider = (*Sysfs)(nil)
