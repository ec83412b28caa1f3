// Package config carries build-time metadata injected by the dev tool.
package config

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)
