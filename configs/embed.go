// Package configs provides embedded configuration templates for mandex.
//
// Templates are embedded at build time using Go's //go:embed directive so
// they are available in all distributions (go install and binary releases).
//
// The template is used by `mandex config init` to create the user config at
// ~/.config/mandex/config.yaml. See internal/config for the load order.
package configs

import _ "embed"

// ConfigTemplate is the template for the user-level configuration file.
//
//go:embed config.example.yaml
var ConfigTemplate string
