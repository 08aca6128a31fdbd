package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a settings file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Codec reads and writes Settings in one file format.
type Codec interface {
	// Decode overlays data onto s. Keys missing from data keep their value.
	Decode(data []byte, s *Settings) error
	Encode(s Settings) ([]byte, error)
}

var codecs = map[string]Codec{
	".yaml": yamlCodec{},
	".yml":  yamlCodec{},
	".toml": tomlCodec{},
	".json": jsonCodec{},
}

// Formats lists the supported file extensions.
func Formats() []string {
	exts := make([]string, 0, len(codecs))
	for ext := range codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// CodecFor returns the codec for a path (by extension) or a bare format name
// such as "yaml".
func CodecFor(pathOrFormat string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(pathOrFormat))
	if ext == "" {
		ext = "." + strings.ToLower(pathOrFormat)
	}
	c, ok := codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, pathOrFormat)
	}
	return c, nil
}

// Load reads path on top of the defaults.
func Load(path string) (Settings, error) {
	s := Default()

	c, err := CodecFor(path)
	if err != nil {
		return s, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := c.Decode(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return s, nil
}

// Write stores s at path in the format implied by its extension.
func Write(path string, s Settings) error {
	data, err := Marshal(path, s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Marshal encodes s for a path or format name.
func Marshal(pathOrFormat string, s Settings) ([]byte, error) {
	c, err := CodecFor(pathOrFormat)
	if err != nil {
		return nil, err
	}
	return c.Encode(s)
}

type yamlCodec struct{}

func (yamlCodec) Decode(data []byte, s *Settings) error {
	return yaml.Unmarshal(data, s)
}

func (yamlCodec) Encode(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type tomlCodec struct{}

func (tomlCodec) Decode(data []byte, s *Settings) error {
	_, err := toml.Decode(string(data), s)
	return err
}

func (tomlCodec) Encode(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type jsonCodec struct{}

func (jsonCodec) Decode(data []byte, s *Settings) error {
	return json.Unmarshal(data, s)
}

func (jsonCodec) Encode(s Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
