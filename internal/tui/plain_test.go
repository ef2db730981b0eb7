package tui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/hypertabs"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

func TestWriteFrame(t *testing.T) {
	c := hypertabs.New("root", testPanels(), hypertabs.DefaultOptions(), hypertabs.Deps{})
	defer c.Close()

	var buf bytes.Buffer
	if err := WriteFrame(&buf, c, 120, 20); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Alpha body") || strings.Contains(out, "Bravo body") {
		t.Errorf("unexpected frame:\n%s", out)
	}
}

func TestWriteJSON_CollapsedSnapshot(t *testing.T) {
	panels := append(testPanels(), panel.Panel{
		ID:          "group",
		Title:       "Group",
		ContentType: panel.ContentNested,
		NestedConfig: &panel.NestedConfig{
			Mode:   core.ModeWizard,
			Panels: testPanels(),
		},
		SortOrder: 2,
		Enabled:   true,
	})
	opts := hypertabs.DefaultOptions()
	opts.LazyLoading = false
	c := hypertabs.New("root", panels, opts, hypertabs.Deps{})
	defer c.Close()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, c, 50, 20); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if snap.Mode != "tabs" || snap.EffectiveMode != "accordion" || snap.Breakpoint != "mobile" {
		t.Errorf("unexpected modes: %+v", snap)
	}
	if snap.ActivePanelID != "a" || len(snap.Panels) != 3 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if len(snap.Children) != 1 || snap.Children[0].ContainerID != "root/group" {
		t.Fatalf("expected the nested container, got %+v", snap.Children)
	}
	if snap.Children[0].EffectiveMode != "wizard" {
		t.Errorf("child mode = %q", snap.Children[0].EffectiveMode)
	}
}
