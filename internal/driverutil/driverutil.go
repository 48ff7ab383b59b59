// Package driverutil holds small path and formatting helpers shared by the
// command-line driver.
package driverutil

import (
	"path/filepath"
	"strings"
)

// OutputBaseName strips path and the source extension from sourcePath,
// leaving the stem the driver uses to name the emitted ".tm" file.
func OutputBaseName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
