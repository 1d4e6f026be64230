package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/errors"
)

// Write encodes cfg in format f to w. The output can be read back with
// [Read].
func Write(cfg *diagram.Config, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", f)
	}
	return nil
}

// Marshal encodes cfg in format f.
func Marshal(cfg *diagram.Config, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(cfg, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes cfg to path, choosing the format by extension.
func Export(cfg *diagram.Config, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(cfg, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
