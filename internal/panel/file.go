package panel

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/fsutil"
)

// LoadFile reads a panel collection from a .json, .yaml or .yml file. A file
// that cannot be decoded yields an error for which IsMalformed is true.
func LoadFile(path string) ([]Panel, error) {
	data, err := fsutil.ReadFileScoped(path, fsutil.MaxPanelsFileSize)
	if err != nil {
		return nil, fmt.Errorf("reading panels file: %w", err)
	}

	if isJSON(path) {
		return Decode(data)
	}

	var panels []Panel
	if err := yaml.Unmarshal(data, &panels); err != nil {
		return nil, core.ErrValidation(core.CodeParseFailed, "malformed panel collection").
			WithCause(err).
			WithDetail("path", path)
	}
	if panels == nil {
		panels = []Panel{}
	}
	return panels, nil
}

// SaveFile atomically writes a panel collection, choosing the encoding from
// the file extension.
func SaveFile(path string, panels []Panel) error {
	if panels == nil {
		panels = []Panel{}
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(panels, "", "  ")
	} else {
		data, err = yaml.Marshal(panels)
	}
	if err != nil {
		return fmt.Errorf("encoding panels: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating panels directory: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing panels file: %w", err)
	}
	return nil
}

// IsMalformed reports whether err comes from decoding a panel collection, as
// opposed to reading it.
func IsMalformed(err error) bool {
	return errors.Is(err, core.ErrValidation(core.CodeParseFailed, ""))
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
