// Package fadeshow carries the build metadata shared by the command and the
// daemon.
package fadeshow

import _ "embed"

//go:embed VERSION
var Version string

//go:embed fadeshow.toml
var DefaultConfig string
