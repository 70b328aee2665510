package apply

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/display/mocks"
	"github.com/hzsync/hzsync-go/pkg/display/simulated"
	"github.com/hzsync/hzsync-go/pkg/mode"
)

var (
	m1080p60  = display.Mode{Width: 1920, Height: 1080, RefreshRate: 60}
	m1080p120 = display.Mode{Width: 1920, Height: 1080, RefreshRate: 120}
	m1440p60  = display.Mode{Width: 2560, Height: 1440, RefreshRate: 60}
)

func newSim(acceptTiming bool) *simulated.Backend {
	return simulated.New(&simulated.Profiles{Displays: []simulated.Profile{{
		ID:                 "sim-0",
		Current:            m1080p60,
		Modes:              []display.Mode{m1080p60, m1080p120, m1440p60},
		AcceptCustomTiming: acceptTiming,
	}}})
}

func resolveOn(t *testing.T, b *simulated.Backend, req mode.Request) (*mode.Catalog, mode.Resolved) {
	t.Helper()
	cat, err := mode.Load(b, req.DisplayID)
	require.NoError(t, err)
	return cat, mode.Resolve(cat, req)
}

func TestApplyDirectExact(t *testing.T) {
	b := newSim(false)
	req := mode.Request{DisplayID: "sim-0", TargetRate: 120, PreferredWidth: 1920, PreferredHeight: 1080}
	cat, resolved := resolveOn(t, b, req)

	res, err := NewForBackend(b, DefaultConfig()).Apply(context.Background(), "sim-0", cat, req, resolved)
	require.NoError(t, err)

	assert.Equal(t, StepDirect, res.Step)
	assert.True(t, res.Exact)
	assert.False(t, res.Unchanged)
	assert.Equal(t, 120.0, res.ActualRate)
	assert.Equal(t, "exact", res.Note)
	assert.Equal(t, 1, b.Commits())

	cur, ok, err := b.CurrentMode("sim-0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m1080p120, cur)
}

func TestApplyAlreadyCurrentIssuesNoTransaction(t *testing.T) {
	b := newSim(false)
	req := mode.Request{DisplayID: "sim-0", TargetRate: 60}
	cat, resolved := resolveOn(t, b, req)

	res, err := NewForBackend(b, DefaultConfig()).Apply(context.Background(), "sim-0", cat, req, resolved)
	require.NoError(t, err)

	assert.True(t, res.Unchanged)
	assert.Equal(t, 60.0, res.ActualRate)
	assert.Equal(t, 0, b.Commits())
	assert.Equal(t, 0, b.OpenTransactions())
}

func TestApplyEmptyCatalogNoModesAvailable(t *testing.T) {
	enum := mocks.NewMockEnumerator(t)
	conf := mocks.NewMockConfigurator(t)
	inj := mocks.NewMockTimingInjector(t)

	cat := mode.NewCatalog("d", nil)
	req := mode.Request{DisplayID: "d", TargetRate: 60}

	res, err := New(enum, conf, inj, DefaultConfig()).Apply(context.Background(), "d", cat, req, mode.Resolve(cat, req))

	require.Error(t, err)
	assert.ErrorIs(t, err, mode.ErrNoModesAvailable)
	assert.NotErrorIs(t, err, ErrApplyFailed)
	assert.Equal(t, StepNone, res.Step)
	// The mocks fail the test on any unexpected BeginConfig/Commit call.
}

func TestApplyCustomTimingAccepted(t *testing.T) {
	b := newSim(true)
	req := mode.Request{DisplayID: "sim-0", TargetRate: 40}
	cat, resolved := resolveOn(t, b, req)
	require.Equal(t, mode.MatchClosestSameResolution, resolved.Kind)

	res, err := NewForBackend(b, DefaultConfig()).Apply(context.Background(), "sim-0", cat, req, resolved)
	require.NoError(t, err)

	assert.Equal(t, StepCustomTiming, res.Step)
	assert.True(t, res.Exact)
	assert.Equal(t, 40.0, res.ActualRate)

	inj := b.Injections()
	require.Len(t, inj, 1)
	assert.Equal(t, 1920, inj[0].ActiveWidth)
	assert.Equal(t, 1080, inj[0].ActiveHeight)
	assert.Equal(t, 40.0, inj[0].RefreshRate)
}

func TestApplyCustomTimingIgnoredFallsBackToStandard(t *testing.T) {
	b := newSim(false)
	req := mode.Request{DisplayID: "sim-0", TargetRate: 40}
	cat, resolved := resolveOn(t, b, req)

	res, err := NewForBackend(b, DefaultConfig()).Apply(context.Background(), "sim-0", cat, req, resolved)
	require.NoError(t, err)

	assert.Equal(t, StepStandard, res.Step)
	assert.False(t, res.Exact)
	assert.Equal(t, m1080p60, res.Mode)
	assert.True(t, res.Unchanged)
	assert.Contains(t, res.Note, "closest available")
	assert.Len(t, b.Injections(), 1)
}

func TestApplyStandardCommitsClosest(t *testing.T) {
	b := newSim(false)
	req := mode.Request{DisplayID: "sim-0", TargetRate: 100}
	cat, resolved := resolveOn(t, b, req)

	cfg := DefaultConfig()
	cfg.SkipCustomTiming = true
	res, err := NewForBackend(b, cfg).Apply(context.Background(), "sim-0", cat, req, resolved)
	require.NoError(t, err)

	assert.Equal(t, StepStandard, res.Step)
	assert.Equal(t, m1080p120, res.Mode)
	assert.False(t, res.Exact)
	assert.Equal(t, 1, b.Commits())
	assert.Empty(t, b.Injections())
}

func TestApplyAllStepsFail(t *testing.T) {
	b := newSim(false)
	b.FailCommit = true
	req := mode.Request{DisplayID: "sim-0", TargetRate: 120}
	cat, resolved := resolveOn(t, b, req)

	_, err := NewForBackend(b, DefaultConfig()).Apply(context.Background(), "sim-0", cat, req, resolved)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplyFailed)
	assert.ErrorIs(t, err, simulated.ErrInjectedFailure)
	assert.Equal(t, 0, b.OpenTransactions())
	assert.Equal(t, 0, b.Commits())
}

func TestApplyConfigureFailureCancels(t *testing.T) {
	enum := mocks.NewMockEnumerator(t)
	conf := mocks.NewMockConfigurator(t)

	cat := mode.NewCatalog("d", []display.Mode{m1080p60, m1080p120}).WithCurrent(m1080p60)
	req := mode.Request{DisplayID: "d", TargetRate: 120}
	resolved := mode.Resolve(cat, req)

	conf.EXPECT().BeginConfig().Return(display.ConfigHandle(7), nil).Twice()
	conf.EXPECT().Configure(display.ConfigHandle(7), display.ID("d"), m1080p120).Return(errors.New("rejected")).Twice()
	conf.EXPECT().Cancel(display.ConfigHandle(7)).Return(nil).Twice()

	_, err := New(enum, conf, nil, DefaultConfig()).Apply(context.Background(), "d", cat, req, resolved)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplyFailed)
	conf.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestApplyCommitUsesConfiguredPermanence(t *testing.T) {
	enum := mocks.NewMockEnumerator(t)
	conf := mocks.NewMockConfigurator(t)

	cat := mode.NewCatalog("d", []display.Mode{m1080p60, m1080p120}).WithCurrent(m1080p60)
	req := mode.Request{DisplayID: "d", TargetRate: 120}

	conf.EXPECT().BeginConfig().Return(display.ConfigHandle(1), nil).Once()
	conf.EXPECT().Configure(display.ConfigHandle(1), display.ID("d"), m1080p120).Return(nil).Once()
	conf.EXPECT().Commit(display.ConfigHandle(1), display.PermanencePermanent).Return(nil).Once()

	res, err := New(enum, conf, nil, DefaultConfig()).Apply(context.Background(), "d", cat, req, mode.Resolve(cat, req))
	require.NoError(t, err)
	assert.Equal(t, StepDirect, res.Step)
}

func TestApplyInjectedTimingVerifiedByFreshRead(t *testing.T) {
	enum := mocks.NewMockEnumerator(t)
	conf := mocks.NewMockConfigurator(t)
	inj := mocks.NewMockTimingInjector(t)

	cat := mode.NewCatalog("d", []display.Mode{m1080p60}).WithCurrent(m1080p60)
	req := mode.Request{DisplayID: "d", TargetRate: 50}

	timing, err := display.ComputeTiming(1920, 1080, 50)
	require.NoError(t, err)
	inj.EXPECT().InjectTiming(display.ID("d"), timing).Return(nil).Once()
	enum.EXPECT().CurrentMode(display.ID("d")).Return(display.Mode{Width: 1920, Height: 1080, RefreshRate: 50.02}, true, nil).Once()

	res, err := New(enum, conf, inj, DefaultConfig()).Apply(context.Background(), "d", cat, req, mode.Resolve(cat, req))
	require.NoError(t, err)
	assert.Equal(t, StepCustomTiming, res.Step)
	assert.Equal(t, 50.02, res.ActualRate)
}

func TestApplyCancelledContext(t *testing.T) {
	b := newSim(false)
	req := mode.Request{DisplayID: "sim-0", TargetRate: 40}
	cat, resolved := resolveOn(t, b, req)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewForBackend(b, DefaultConfig()).Apply(ctx, "sim-0", cat, req, resolved)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, b.Injections())
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "DIRECT", StepDirect.String())
	assert.Equal(t, "CUSTOM_TIMING", StepCustomTiming.String())
	assert.Equal(t, "STANDARD", StepStandard.String())
	assert.Equal(t, "UNKNOWN", Step(42).String())
}
