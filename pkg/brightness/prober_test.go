package brightness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzsync/hzsync-go/pkg/brightness/mocks"
	"github.com/hzsync/hzsync-go/pkg/display"
)

func TestProberPicksFirstWorkingProviderAndCaches(t *testing.T) {
	first := mocks.NewMockProvider(t)
	second := mocks.NewMockProvider(t)

	first.EXPECT().Name().Return("first").Maybe()
	second.EXPECT().Name().Return("second").Maybe()
	first.EXPECT().Probe(display.ID("HDMI-1")).Return(display.ErrUnsupported).Once()
	second.EXPECT().Probe(display.ID("HDMI-1")).Return(nil).Once()
	second.EXPECT().Get(display.ID("HDMI-1")).Return(0.7, nil).Twice()

	p := NewProber(nil, first, nil, second)

	for i := 0; i < 2; i++ {
		level, err := p.Get("HDMI-1")
		require.NoError(t, err)
		assert.Equal(t, 0.7, level)
	}

	pr, err := p.Provider("HDMI-1")
	require.NoError(t, err)
	assert.Equal(t, "second", pr.Name())
}

func TestProberCachesFailure(t *testing.T) {
	only := mocks.NewMockProvider(t)
	only.EXPECT().Name().Return("only").Maybe()
	only.EXPECT().Probe(display.ID("DP-1")).Return(errors.New("nope")).Once()

	p := NewProber(nil, only)

	err := p.Probe("DP-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoProvider)

	err = p.Set("DP-1", 0.5)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestProberSetRejectsOutOfRange(t *testing.T) {
	p := NewProber(nil, mocks.NewMockProvider(t))

	assert.ErrorIs(t, p.Set("DP-1", 1.5), ErrOutOfRange)
	assert.ErrorIs(t, p.Set("DP-1", -0.1), ErrOutOfRange)
}

func TestProberNoProviders(t *testing.T) {
	p := NewProber(nil)
	_, err := p.Get("eDP-1")
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal("eDP-1"))
	assert.True(t, IsInternal("LVDS1"))
	assert.True(t, IsInternal("DSI-1"))
	assert.False(t, IsInternal("HDMI-1"))
	assert.False(t, IsInternal("DP-2"))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1))
	assert.Equal(t, 1.0, Clamp(2))
	assert.Equal(t, 0.4, Clamp(0.4))
}
