package xrandr

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// Output is one output section of `xrandr --query`.
type Output struct {
	Name      string
	Connected bool
	Active    bool
	Primary   bool
	Modes     []display.Mode
	Current   display.Mode

	// Brightness is only populated from --verbose output.
	Brightness    float64
	HasBrightness bool
}

// HasCurrent reports whether a current mode was marked.
func (o *Output) HasCurrent() bool {
	return o.Current.Valid()
}

// ParseQuery parses `xrandr --query` (optionally --verbose) output.
// Outputs are returned in the order xrandr lists them.
func ParseQuery(data []byte) []*Output {
	var (
		outputs []*Output
		cur     *Output
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "Screen ") {
			continue
		}

		if line[0] != ' ' && line[0] != '\t' {
			cur = parseOutputHeader(line)
			if cur != nil {
				outputs = append(outputs, cur)
			}
			continue
		}
		if cur == nil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(trimmed, "Brightness:"); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				cur.Brightness = f
				cur.HasBrightness = true
			}
			continue
		}
		parseModeLine(cur, trimmed)
	}
	return outputs
}

func parseOutputHeader(line string) *Output {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}
	switch fields[1] {
	case "connected", "disconnected", "unknown":
	default:
		return nil
	}

	o := &Output{Name: fields[0], Connected: fields[1] == "connected"}
	for _, f := range fields[2:] {
		if f == "primary" {
			o.Primary = true
			continue
		}
		// An active output carries its geometry, e.g. 1920x1080+0+0.
		if strings.Contains(f, "x") && strings.Contains(f, "+") {
			o.Active = true
		}
	}
	return o
}

// parseModeLine handles "1920x1080     60.02*+  48.00" style lines. Verbose
// mode detail lines ("h: width ...", "v: height ...") are skipped because
// they do not start with a resolution.
func parseModeLine(o *Output, line string) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return
	}
	w, h, ok := parseResolution(fields[0])
	if !ok {
		return
	}

	for _, f := range fields[1:] {
		current := strings.Contains(f, "*")
		f = strings.Trim(f, "*+")
		if f == "" {
			// A detached marker such as " +" belongs to the previous rate.
			continue
		}
		rate, err := strconv.ParseFloat(f, 64)
		if err != nil || rate <= 0 {
			// Verbose mode names carry flags like "(0x48)"; stop at them.
			return
		}
		m := display.Mode{Width: w, Height: h, RefreshRate: rate}
		o.Modes = append(o.Modes, m)
		if current {
			o.Current = m
		}
	}
}

// parseResolution accepts "1920x1080", interlaced "1920x1080i" and custom
// mode names such as "1920x1080_40.00".
func parseResolution(s string) (int, int, bool) {
	s, _, _ = strings.Cut(s, "_")
	s = strings.TrimSuffix(s, "i")
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, false
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
