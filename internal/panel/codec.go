package panel

import (
	"encoding/json"
	"fmt"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
)

// Decode strictly decodes a serialized panel collection.
func Decode(raw []byte) ([]Panel, error) {
	var panels []Panel
	if err := json.Unmarshal(raw, &panels); err != nil {
		return nil, core.ErrValidation(core.CodeParseFailed, "malformed panel collection").WithCause(err)
	}
	if panels == nil {
		panels = []Panel{}
	}
	return panels, nil
}

// Parse decodes a serialized panel collection. Malformed input yields an
// empty collection; Parse never fails.
func Parse(raw string) []Panel {
	if raw == "" {
		return []Panel{}
	}
	panels, err := Decode([]byte(raw))
	if err != nil {
		return []Panel{}
	}
	return panels
}

// Serialize encodes a panel collection as the host stores it. It returns
// "[]" for values JSON cannot represent (for example NaN inside custom
// styles).
func Serialize(panels []Panel) string {
	data, err := Encode(panels)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Encode is Serialize for callers that need the marshal error.
func Encode(panels []Panel) ([]byte, error) {
	if panels == nil {
		panels = []Panel{}
	}
	data, err := json.Marshal(panels)
	if err != nil {
		return nil, fmt.Errorf("serializing panels: %w", err)
	}
	return data, nil
}
