// Package io reads and writes diagram configs as JSON, TOML or YAML.
//
// # Overview
//
// The renderers consume an already parsed [diagram.Config]; this package is
// the collaborator that produces one from a file and writes one back. The
// format is chosen by file extension:
//
//   - .json: encoding/json
//   - .toml: github.com/BurntSushi/toml
//   - .yaml, .yml: gopkg.in/yaml.v3
//
// All three formats use the same camelCase keys:
//
//	theme = "dark"
//	cornerRadius = 6.0
//
//	[canvas]
//	width = 800.0
//	height = 600.0
//
//	[floorSize]
//	width = 400.0
//	depth = 280.0
//
//	[[tiers]]
//	name = "Data"
//	elevation = 0.0
//
//	[[nodes]]
//	tier = 0
//	x = 40.0
//	y = 40.0
//	width = 80.0
//	depth = 50.0
//	height = 30.0
//	color = "blue"
//	label = "api"
//
// Unknown keys are rejected so typos surface instead of silently dropping
// a setting. Decoding does not validate the config; call
// [diagram.Config.Validate] or let the renderer do it.
package io
