package standards

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/pitchside/internal/domain/types"
)

//go:embed standards.yaml
var defaultTable []byte

type document struct {
	Bands map[types.AgeBand]map[types.Metric]Thresholds `yaml:"bands"`
}

// Parse decodes a YAML standards document and validates it.
func Parse(data []byte, opts ...Option) (*Table, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(doc.Bands) == 0 {
		return nil, fmt.Errorf("%w: no bands defined", ErrIncomplete)
	}
	return New(doc.Bands, opts...)
}

// Load reads a standards document from path. An empty path yields Default.
func Load(path string, opts ...Option) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return Parse(data, opts...)
}

// Default returns the built-in youth scouting standards.
func Default() (*Table, error) {
	return Parse(defaultTable)
}
