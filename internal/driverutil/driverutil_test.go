package driverutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChandlerJayCalkins/cminus/internal/driverutil"
)

func TestOutputBaseNameStripsDirAndExtension(t *testing.T) {
	require.Equal(t, "program", driverutil.OutputBaseName("/tmp/src/program.cm"))
	require.Equal(t, "program", driverutil.OutputBaseName("program.cm"))
	require.Equal(t, "noext", driverutil.OutputBaseName("noext"))
}
