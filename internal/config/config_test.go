package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChandlerJayCalkins/cminus/internal/config"
)

func TestTraceFlagsEnableDisable(t *testing.T) {
	flags := config.NewBitMask(config.TraceScanner)
	require.True(t, flags.Enabled(config.TraceScanner))
	require.False(t, flags.Enabled(config.TraceParse))

	flags.Enable(config.TraceParse)
	require.True(t, flags.Enabled(config.TraceParse))

	flags.Disable(config.TraceScanner)
	require.False(t, flags.Enabled(config.TraceScanner))
}

func TestColorModeRoundTrip(t *testing.T) {
	for _, mode := range []config.ColorMode{config.ColorAuto, config.ColorAlways, config.ColorNever} {
		text, err := mode.MarshalText()
		require.NoError(t, err)

		var got config.ColorMode
		require.NoError(t, got.UnmarshalText(text))
		require.Equal(t, mode, got)
	}
}

func TestColorModeUnmarshalUnknown(t *testing.T) {
	var c config.ColorMode
	require.Error(t, c.UnmarshalText([]byte("rainbow")))
}
