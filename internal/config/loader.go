package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decode parses data as YAML or TOML depending on the extension of path.
func Decode(path string, data []byte) (FileTarget, error) {
	var ft FileTarget

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&ft); err != nil {
			return FileTarget{}, &OpError{Op: "config.decode", Kind: KindInvalidConfig, Path: path, Err: err}
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&ft); err != nil {
			return FileTarget{}, &OpError{Op: "config.decode", Kind: KindInvalidConfig, Path: path, Err: err}
		}
	default:
		return FileTarget{}, &OpError{
			Op:   "config.decode",
			Kind: KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("unsupported extension %q (want .yaml, .yml or .toml): %w", ext, ErrInvalidConfig),
		}
	}

	return ft, nil
}

// Load reads and maps the target file at path.
func Load(path string) (Target, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Target{}, &OpError{
			Op:   "config.load",
			Kind: KindNotFound,
			Path: path,
			Err:  fmt.Errorf("%w: %w", ErrNotFound, err),
		}
	}

	ft, err := Decode(path, b)
	if err != nil {
		return Target{}, err
	}

	return Map(path, ft)
}
