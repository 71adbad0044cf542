package schedsync

import _ "embed"

// Version exposes the version of the synchronization layer.
//
//go:embed VERSION
var Version string
