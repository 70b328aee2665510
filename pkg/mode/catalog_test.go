package mode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/display/mocks"
	"github.com/hzsync/hzsync-go/pkg/display/simulated"
)

func TestLoadFromSimulated(t *testing.T) {
	b := simulated.New(nil)

	c, err := Load(b, "sim-0")
	require.NoError(t, err)

	assert.Equal(t, display.ID("sim-0"), c.DisplayID)
	assert.Equal(t, 3, c.Len())
	cur, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, display.Mode{Width: 1920, Height: 1080, RefreshRate: 60}, cur)
}

func TestLoadEmptyCatalog(t *testing.T) {
	src := mocks.NewMockEnumerator(t)
	src.EXPECT().AllModes(display.ID("d")).Return([]display.Mode{}, nil)
	src.EXPECT().CurrentMode(display.ID("d")).Return(display.Mode{}, false, nil)

	c, err := Load(src, "d")
	require.NoError(t, err)
	assert.True(t, c.Empty())
	assert.Empty(t, c.Rates())
	assert.Empty(t, c.Resolutions())
}

func TestLoadUnavailable(t *testing.T) {
	t.Run("ModesQueryFails", func(t *testing.T) {
		src := mocks.NewMockEnumerator(t)
		src.EXPECT().AllModes(display.ID("d")).Return(nil, errors.New("bus error"))

		_, err := Load(src, "d")
		assert.ErrorIs(t, err, display.ErrDisplayUnavailable)
	})

	t.Run("CurrentModeFails", func(t *testing.T) {
		src := mocks.NewMockEnumerator(t)
		src.EXPECT().AllModes(display.ID("d")).Return([]display.Mode{{Width: 1, Height: 1, RefreshRate: 60}}, nil)
		src.EXPECT().CurrentMode(display.ID("d")).Return(display.Mode{}, false, errors.New("gone"))

		_, err := Load(src, "d")
		assert.ErrorIs(t, err, display.ErrDisplayUnavailable)
	})

	t.Run("UnknownDisplay", func(t *testing.T) {
		_, err := Load(simulated.New(nil), "nope")
		assert.ErrorIs(t, err, display.ErrDisplayUnavailable)
	})
}

func TestCatalogDerivedFields(t *testing.T) {
	c := NewCatalog("d", []display.Mode{
		{Width: 2560, Height: 1440, RefreshRate: 144},
		{Width: 1920, Height: 1080, RefreshRate: 60},
		{Width: 2560, Height: 1440, RefreshRate: 60},
		{Width: 1920, Height: 1080, RefreshRate: 120},
		{Width: 0, Height: 1080, RefreshRate: 30},
	})

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []float64{60, 120, 144}, c.Rates())
	assert.Equal(t, []display.Resolution{{Width: 2560, Height: 1440}, {Width: 1920, Height: 1080}}, c.Resolutions())
	assert.Equal(t, []display.Mode{
		{Width: 1920, Height: 1080, RefreshRate: 60},
		{Width: 1920, Height: 1080, RefreshRate: 120},
	}, c.AtResolution(display.Resolution{Width: 1920, Height: 1080}))
	assert.True(t, c.Contains(display.Mode{Width: 2560, Height: 1440, RefreshRate: 60}))
	assert.False(t, c.Contains(display.Mode{Width: 2560, Height: 1440, RefreshRate: 120}))
}

func TestCatalogModesIsCopy(t *testing.T) {
	c := NewCatalog("d", []display.Mode{{Width: 1920, Height: 1080, RefreshRate: 60}})
	modes := c.Modes()
	modes[0].RefreshRate = 1

	assert.Equal(t, 60.0, c.Modes()[0].RefreshRate)
}
