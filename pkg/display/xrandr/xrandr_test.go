package xrandr

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzsync/hzsync-go/pkg/display"
)

const queryOutput = `Screen 0: minimum 320 x 200, current 4480 x 1440, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.02*+  48.00  
   1680x1050     59.88  
   1280x720      60.00    59.94  
HDMI-1 disconnected (normal left inverted right x axis y axis)
DP-1 connected 2560x1440+1920+0 (normal left inverted right x axis y axis) 597mm x 336mm
   2560x1440     59.95 +  143.91*  119.88  
   1920x1080i    60.00  
DP-2 connected (normal left inverted right x axis y axis)
   1920x1080     60.00 +
`

const verboseOutput = `Screen 0: minimum 320 x 200, current 1920 x 1080, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (0x48) normal (normal left inverted right x axis y axis) 344mm x 194mm
	Identifier: 0x42
	Brightness: 0.80
	Gamma:      1.0:1.0:1.0
  1920x1080 (0x48) 148.500MHz +HSync +VSync *current +preferred
        h: width  1920 start 2008 end 2052 total 2200 skew    0 clock  67.50KHz
        v: height 1080 start 1084 end 1089 total 1125           clock  60.00Hz
`

type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	outputs map[string][]byte
	fail    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: map[string][]byte{
			"--query":   []byte(queryOutput),
			"--verbose": []byte(verboseOutput),
		},
		fail: make(map[string]error),
	}
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	if err, ok := f.fail[args[0]]; ok {
		return nil, err
	}
	return f.outputs[args[0]], nil
}

func (f *fakeRunner) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func TestParseQuery(t *testing.T) {
	outputs := ParseQuery([]byte(queryOutput))
	require.Len(t, outputs, 4)

	edp := outputs[0]
	assert.Equal(t, "eDP-1", edp.Name)
	assert.True(t, edp.Connected)
	assert.True(t, edp.Active)
	assert.True(t, edp.Primary)
	assert.Len(t, edp.Modes, 5)
	assert.Equal(t, display.Mode{Width: 1920, Height: 1080, RefreshRate: 60.02}, edp.Current)

	assert.False(t, outputs[1].Connected)

	dp := outputs[2]
	assert.Equal(t, display.Mode{Width: 2560, Height: 1440, RefreshRate: 143.91}, dp.Current)
	assert.Equal(t, []display.Mode{
		{Width: 2560, Height: 1440, RefreshRate: 59.95},
		{Width: 2560, Height: 1440, RefreshRate: 143.91},
		{Width: 2560, Height: 1440, RefreshRate: 119.88},
		{Width: 1920, Height: 1080, RefreshRate: 60},
	}, dp.Modes)

	assert.True(t, outputs[3].Connected)
	assert.False(t, outputs[3].Active)
	assert.False(t, outputs[3].HasCurrent())
}

const customModeQuery = `Screen 0: minimum 320 x 200, current 1920 x 1080, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.02 +  50.00  
   1920x1080_40.00  40.00*
`

func TestParseQueryCustomModeName(t *testing.T) {
	outputs := ParseQuery([]byte(customModeQuery))
	require.Len(t, outputs, 1)

	o := outputs[0]
	require.True(t, o.HasCurrent())
	assert.Equal(t, display.Mode{Width: 1920, Height: 1080, RefreshRate: 40}, o.Current)
	assert.Len(t, o.Modes, 3)
}

func TestBackendCurrentModeAfterInjection(t *testing.T) {
	r := newFakeRunner()
	r.outputs["--query"] = []byte(customModeQuery)
	b := New(Config{Runner: r})

	timing, err := display.ComputeTiming(1920, 1080, 40)
	require.NoError(t, err)
	require.NoError(t, b.InjectTiming("eDP-1", timing))

	cur, ok, err := b.CurrentMode("eDP-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 40.0, cur.RefreshRate)
	assert.Equal(t, "1920x1080_40.00", ModeName(timing))
}

func TestParseQueryVerboseBrightness(t *testing.T) {
	outputs := ParseQuery([]byte(verboseOutput))
	require.Len(t, outputs, 1)
	assert.True(t, outputs[0].HasBrightness)
	assert.InDelta(t, 0.8, outputs[0].Brightness, 1e-9)
	assert.Empty(t, outputs[0].Modes)
}

func TestBackendEnumeration(t *testing.T) {
	b := New(Config{Runner: newFakeRunner()})

	ids, err := b.ListActiveDisplays()
	require.NoError(t, err)
	assert.Equal(t, []display.ID{"eDP-1", "DP-1"}, ids)

	m, ok, err := b.CurrentMode("DP-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 143.91, m.RefreshRate)

	_, err = b.AllModes("HDMI-1")
	assert.ErrorIs(t, err, display.ErrDisplayUnavailable)
}

func TestBackendQueryFailure(t *testing.T) {
	r := newFakeRunner()
	r.fail["--query"] = errors.New("cannot open display")
	b := New(Config{Runner: r})

	_, err := b.ListActiveDisplays()
	assert.ErrorIs(t, err, display.ErrDisplayUnavailable)
}

func TestBackendCommitSingleInvocation(t *testing.T) {
	r := newFakeRunner()
	b := New(Config{Runner: r})

	h, err := b.BeginConfig()
	require.NoError(t, err)
	require.NoError(t, b.Configure(h, "eDP-1", display.Mode{Width: 1920, Height: 1080, RefreshRate: 48}))
	require.NoError(t, b.Configure(h, "DP-1", display.Mode{Width: 2560, Height: 1440, RefreshRate: 119.88}))
	require.NoError(t, b.Commit(h, display.PermanencePermanent))

	assert.Equal(t,
		"--output eDP-1 --mode 1920x1080 --rate 48.00 --output DP-1 --mode 2560x1440 --rate 119.88",
		strings.Join(r.lastCall(), " "))

	assert.ErrorIs(t, b.Commit(h, display.PermanencePermanent), ErrUnknownHandle)
}

func TestBackendCancel(t *testing.T) {
	r := newFakeRunner()
	b := New(Config{Runner: r})

	h, err := b.BeginConfig()
	require.NoError(t, err)
	require.NoError(t, b.Configure(h, "eDP-1", display.Mode{Width: 1920, Height: 1080, RefreshRate: 48}))
	require.NoError(t, b.Cancel(h))
	assert.Empty(t, r.calls)
}

func TestBackendInjectTiming(t *testing.T) {
	r := newFakeRunner()
	r.fail["--newmode"] = errors.New("mode already exists")
	b := New(Config{Runner: r})

	timing, err := display.ComputeTiming(1920, 1080, 50)
	require.NoError(t, err)
	require.NoError(t, b.InjectTiming("eDP-1", timing))

	require.Len(t, r.calls, 3)
	assert.Equal(t, []string{"--newmode", "1920x1080_50.00", "130.64", "1920", "2016", "2208", "2304",
		"1080", "1093", "1120", "1134", "+HSync", "+VSync"}, r.calls[0])
	assert.Equal(t, []string{"--addmode", "eDP-1", "1920x1080_50.00"}, r.calls[1])
	assert.Equal(t, []string{"--output", "eDP-1", "--mode", "1920x1080_50.00"}, r.calls[2])
}

func TestGammaBrightness(t *testing.T) {
	r := newFakeRunner()
	g := NewGammaBrightness(New(Config{Runner: r}))

	require.NoError(t, g.Probe("eDP-1"))
	level, err := g.Get("eDP-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, level, 1e-9)

	require.NoError(t, g.Set("eDP-1", 0.5))
	assert.Equal(t, []string{"--output", "eDP-1", "--brightness", "0.500"}, r.lastCall())

	assert.Error(t, g.Set("eDP-1", 1.5))
}
