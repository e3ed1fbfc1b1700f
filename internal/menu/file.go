package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// Format names a menu definition encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported menu file %q: expected .toml, .yaml or .yml", path)
}

// Parse decodes a menu definition and validates it.
func Parse(data []byte, format Format) (Menu, error) {
	var m Menu
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return Menu{}, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return Menu{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Menu{}, fmt.Errorf("unsupported format %q", format)
	}
	if err := Validate(m); err != nil {
		return Menu{}, err
	}
	return m, nil
}

// LoadFile reads and parses a menu definition file.
func LoadFile(path string) (Menu, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Menu{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Menu{}, fmt.Errorf("read menu file: %w", err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return Menu{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// FileSource loads path on every call so edits are picked up by the poller.
func FileSource(path string) Source {
	return Source{
		Name: "file:" + filepath.Base(path),
		Live: true,
		Load: func(context.Context, Context) (Menu, error) {
			return LoadFile(path)
		},
	}
}

// Validate reports the first structural problem in m.
func Validate(m Menu) error {
	for i, item := range m.Items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	for gi, g := range m.Groups {
		if g.Key() == "" {
			return fmt.Errorf("groups[%d]: heading or value required", gi)
		}
		for i, item := range g.Items {
			if err := validateItem(item); err != nil {
				return fmt.Errorf("groups[%d] %q items[%d]: %w", gi, g.Heading, i, err)
			}
		}
	}
	return nil
}

func validateItem(item Item) error {
	if item.Value() == "" {
		return errors.New("label or value required")
	}
	if !KnownAction(item.Action) {
		return fmt.Errorf("unknown action %q", item.Action)
	}
	if item.Action == ActionShell && strings.TrimSpace(item.Command) == "" {
		return errors.New("shell action requires a command")
	}
	return nil
}
