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

// Read decodes a config in format f from r. Unknown keys are an
// INVALID_FORMAT error. Read does not close r.
func Read(r io.Reader, f Format) (*diagram.Config, error) {
	var cfg diagram.Config
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			if err == io.EOF {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "decode yaml: empty document")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", f)
	}
	return &cfg, nil
}

// Parse decodes a config in format f from data.
func Parse(data []byte, f Format) (*diagram.Config, error) {
	return Read(bytes.NewReader(data), f)
}

// Import reads the config file at path, choosing the format by extension.
func Import(path string) (*diagram.Config, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	cfg, err := Read(file, f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", path)
	}
	return cfg, nil
}
