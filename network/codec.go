package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a serialization of a Network.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for formats other than FormatYAML and FormatJSON.
var ErrUnknownFormat = errors.New("network: unknown format")

// ParseFormat maps "yaml", "yml" and "json" (any case) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Decode reads one Network document from r.
func Decode(r io.Reader, f Format) (*Network, error) {
	var n Network
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&n); err != nil {
			return nil, fmt.Errorf("network: failed to parse YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("network: failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}

	return &n, nil
}

// Encode writes n to w.
func Encode(w io.Writer, n *Network, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("network: failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("network: failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// LoadFile reads a Network from path; the format follows the extension.
func LoadFile(path string) (*Network, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("network: open %s: %w", path, err)
	}
	defer file.Close()

	n, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n.Name == "" {
		n.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return n, nil
}

// SaveFile writes n to path, creating or truncating it; the format follows the extension.
func SaveFile(path string, n *Network) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("network: create %s: %w", path, err)
	}
	if err = Encode(file, n, f); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}
