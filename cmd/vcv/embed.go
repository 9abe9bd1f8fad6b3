package main

import _ "embed"

// embeddedConfig holds the defaults layer, applied before any config file.
// Packagers may overwrite defaults.yaml before building, e.g. to pin a
// vswhere location or an SDK root for a build image.
//
//go:embed defaults.yaml
var embeddedConfig []byte
