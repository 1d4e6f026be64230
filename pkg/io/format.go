package io

import (
	"strings"

	"github.com/matzehuels/isotower/pkg/errors"
)

// Format is a config file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// Extensions accepted by [FormatFromPath].
var Extensions = []string{".json", ".toml", ".yaml", ".yml"}

// ParseFormat returns the format named by s ("yml" is accepted for YAML).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (want json, toml or yaml)", s)
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext, err := errors.ValidateExtension(path, Extensions...)
	if err != nil {
		return "", err
	}
	return ParseFormat(strings.TrimPrefix(ext, "."))
}
