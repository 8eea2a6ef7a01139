// Package version stamps the server build with a semantic version, in the
// same spirit as the engine's own build.NewVersion call.
package version

import "github.com/seekerror/build"

// V is the server's build version, formatted via fmt's %v like the engine's
// own version constant.
var V = build.NewVersion(0, 1, 0)
