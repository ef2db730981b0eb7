package hypertabs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

func TestTabs_KeyboardNavigation(t *testing.T) {
	h := newHarness(t, "", threePanels(), testOptions(core.ModeTabs))

	steps := []struct {
		key  string
		want string
	}{
		{"right", "b"},
		{"right", "c"},
		{"right", "a"},
		{"left", "c"},
		{"home", "a"},
		{"end", "c"},
		{"2", "b"},
		{"9", "b"},
		{"j", "c"},
		{"k", "b"},
	}
	for _, s := range steps {
		press(h.c, s.key)
		assert.Equal(t, s.want, h.c.ActivePanelID(), "after %q", s.key)
	}
	assert.Equal(t, "tab=b", h.history.Fragment())
}

func TestTabs_ViewShowsActiveBodyOnly(t *testing.T) {
	for _, style := range []core.TabStyle{
		core.TabStyleHorizontal, core.TabStyleVertical, core.TabStylePill, core.TabStyleUnderline,
	} {
		t.Run(string(style), func(t *testing.T) {
			opts := testOptions(core.ModeTabs)
			opts.TabStyle = style
			h := newHarness(t, "", threePanels(), opts)
			h.c.Resize(120, 20)

			view := h.c.View()
			assert.True(t, contains(view, "Alpha", "Bravo", "Charlie", "Alpha body"))
			assert.NotContains(t, view, "Bravo body")

			press(h.c, "right")
			view = h.c.View()
			assert.Contains(t, view, "Bravo body")
			assert.NotContains(t, view, "Alpha body")
		})
	}
}

func TestTabs_HeaderDecorations(t *testing.T) {
	panels := threePanels()
	panels[0].Icon = &panel.Icon{Kind: panel.IconSymbolic, Value: "home"}
	panels[1].Badge = &panel.Badge{Kind: panel.BadgeCount, Value: "7"}
	panels[2].Badge = &panel.Badge{Kind: panel.BadgeCount, Value: "0"}

	h := newHarness(t, "", panels, testOptions(core.ModeTabs))
	h.c.Resize(120, 20)
	view := h.c.View()

	assert.Contains(t, view, "⌂ Alpha")
	assert.Contains(t, view, "Bravo (7)")
	assert.NotContains(t, view, "(0)")
}

func TestBadgeText(t *testing.T) {
	assert.Empty(t, badgeText(nil))
	assert.Contains(t, badgeText(&panel.Badge{Kind: panel.BadgeCount, Value: "120"}), "(99+)")
	assert.Contains(t, badgeText(&panel.Badge{Kind: panel.BadgeDot}), "●")
	assert.Contains(t, badgeText(&panel.Badge{Kind: panel.BadgeText, Value: "new"}), "[new]")
	assert.Empty(t, badgeText(&panel.Badge{Kind: panel.BadgeText}))
}

func TestIconText(t *testing.T) {
	assert.Empty(t, iconText(nil))
	assert.Equal(t, "★", iconText(&panel.Icon{Kind: panel.IconSymbolic, Value: "Star"}))
	assert.Equal(t, "•", iconText(&panel.Icon{Kind: panel.IconSymbolic, Value: "unknown"}))
	assert.Equal(t, "λ", iconText(&panel.Icon{Kind: panel.IconGlyph, Value: "λ"}))
}

func TestAccordion_SingleExpand(t *testing.T) {
	h := newHarness(t, "", threePanels(), testOptions(core.ModeAccordion))
	s := h.c.Store()
	assert.Empty(t, s.ExpandedPanelIDs(), "nothing opens without a deep link")

	press(h.c, "enter")
	assert.Equal(t, []string{"a"}, s.ExpandedPanelIDs())
	assert.Equal(t, "tab=a", h.history.Fragment())

	press(h.c, "down", "space")
	assert.Equal(t, []string{"b"}, s.ExpandedPanelIDs())
	assert.Equal(t, "b", h.c.ActivePanelID())

	press(h.c, "enter")
	assert.Empty(t, s.ExpandedPanelIDs())
	assert.Equal(t, "b", h.c.ActivePanelID(), "collapsing keeps the active panel")
}

func TestAccordion_MultiExpand(t *testing.T) {
	opts := testOptions(core.ModeAccordion)
	opts.MultiExpand = true
	h := newHarness(t, "", threePanels(), opts)
	s := h.c.Store()

	press(h.c, "1", "3")
	assert.ElementsMatch(t, []string{"a", "c"}, s.ExpandedPanelIDs())

	press(h.c, "1")
	assert.Equal(t, []string{"c"}, s.ExpandedPanelIDs())
}

func TestAccordion_ExpandAndCollapseAll(t *testing.T) {
	h := newHarness(t, "", threePanels(), testOptions(core.ModeAccordion))
	s := h.c.Store()

	press(h.c, "e")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, s.ExpandedPanelIDs())
	view := h.c.View()
	assert.True(t, contains(view, "Expand all", "Alpha body", "Bravo body", "Charlie body"))

	press(h.c, "c")
	assert.Empty(t, s.ExpandedPanelIDs())
	assert.NotContains(t, h.c.View(), "Alpha body")
}

func TestAccordion_ControlsHidden(t *testing.T) {
	opts := testOptions(core.ModeAccordion)
	opts.ShowControls = false
	h := newHarness(t, "", threePanels(), opts)

	press(h.c, "e")
	assert.Empty(t, h.c.Store().ExpandedPanelIDs())
	assert.NotContains(t, h.c.View(), "Expand all")
}

func TestAccordion_InitialExpansion(t *testing.T) {
	t.Run("deep link opens its panel", func(t *testing.T) {
		h := newHarness(t, "tab=b", threePanels(), testOptions(core.ModeAccordion))
		assert.Equal(t, []string{"b"}, h.c.Store().ExpandedPanelIDs())
		assert.Equal(t, 1, h.c.cursor)
	})

	t.Run("expand all pre-seeds every panel", func(t *testing.T) {
		opts := testOptions(core.ModeAccordion)
		opts.ExpandAll = true
		h := newHarness(t, "tab=b", threePanels(), opts)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, h.c.Store().ExpandedPanelIDs())
		assert.ElementsMatch(t, []string{"a", "b", "c"}, h.c.Store().ActivatedPanelIDs())
	})
}

func TestAccordion_HashOpensPanel(t *testing.T) {
	h := newHarness(t, "", threePanels(), testOptions(core.ModeAccordion))

	hashEvent(h.c, "tab=c")
	assert.Equal(t, []string{"c"}, h.c.Store().ExpandedPanelIDs())
	assert.Equal(t, "c", h.c.ActivePanelID())

	// Already open panels stay open
	hashEvent(h.c, "tab=a")
	hashEvent(h.c, "tab=a")
	assert.Equal(t, []string{"a"}, h.c.Store().ExpandedPanelIDs())
}

func TestWizard_LinearFlow(t *testing.T) {
	h := newHarness(t, "", threePanels(), testOptions(core.ModeWizard))
	s := h.c.Store()

	view := h.c.View()
	assert.True(t, contains(view, "Step 1 of 3", "Alpha body", "Previous", "Next"))

	press(h.c, "left")
	assert.Equal(t, 0, s.WizardCurrentStep(), "previous is disabled on the first step")

	press(h.c, "3")
	assert.Equal(t, 0, s.WizardCurrentStep(), "unvisited steps are locked")

	press(h.c, "right")
	assert.Equal(t, 1, s.WizardCurrentStep())
	assert.Equal(t, []int{0}, s.WizardCompletedSteps())
	assert.Equal(t, "b", h.c.ActivePanelID())
	assert.Equal(t, "tab=b", h.history.Fragment())

	press(h.c, "1")
	assert.Equal(t, 0, s.WizardCurrentStep(), "earlier steps are reachable")

	press(h.c, "2")
	assert.Equal(t, 0, s.WizardCurrentStep(), "visited but incomplete steps stay locked")

	press(h.c, "n", "n")
	assert.Equal(t, 2, s.WizardCurrentStep())
	assert.Equal(t, []int{0, 1}, s.WizardCompletedSteps())
	assert.Contains(t, h.c.View(), "Finish")

	press(h.c, "n")
	assert.Equal(t, 2, s.WizardCurrentStep(), "finish is a resting state")
	assert.Equal(t, []int{0, 1}, s.WizardCompletedSteps())

	press(h.c, "1", "2")
	assert.Equal(t, 1, s.WizardCurrentStep(), "completed steps stay reachable")
	press(h.c, "3")
	assert.Equal(t, 1, s.WizardCurrentStep(), "the final step was never completed")
}

func TestWizard_LinearIgnoresDeepLink(t *testing.T) {
	h := newHarness(t, "tab=c", threePanels(), testOptions(core.ModeWizard))
	assert.Equal(t, 0, h.c.Store().WizardCurrentStep())
	assert.Equal(t, "a", h.c.ActivePanelID())

	hashEvent(h.c, "tab=b")
	assert.Equal(t, 0, h.c.Store().WizardCurrentStep(), "address changes obey gating")
}

func TestWizard_NonLinear(t *testing.T) {
	opts := testOptions(core.ModeWizard)
	opts.Linear = false
	h := newHarness(t, "tab=c", threePanels(), opts)
	s := h.c.Store()

	assert.Equal(t, 2, s.WizardCurrentStep())
	assert.Equal(t, "c", h.c.ActivePanelID())

	press(h.c, "1")
	assert.Equal(t, 0, s.WizardCurrentStep())
	press(h.c, "3")
	assert.Equal(t, 2, s.WizardCurrentStep())

	hashEvent(h.c, "tab=b")
	assert.Equal(t, 1, s.WizardCurrentStep())
	assert.Empty(t, s.WizardCompletedSteps())
}

func TestWizard_ProgressHidden(t *testing.T) {
	opts := testOptions(core.ModeWizard)
	opts.ShowProgress = false
	h := newHarness(t, "", threePanels(), opts)

	view := h.c.View()
	assert.Contains(t, view, "Step 1 of 3")
	assert.NotContains(t, view, "● 1")
}

func TestActiveSection(t *testing.T) {
	offsets := []int{0, 10, 25, 40}
	tests := []struct {
		offset, lookahead, want int
	}{
		{0, 0, 0},
		{9, 0, 0},
		{10, 0, 1},
		{8, 2, 1},
		{24, 0, 1},
		{23, 2, 2},
		{100, 0, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActiveSection(offsets, tt.offset, tt.lookahead),
			"offset=%d lookahead=%d", tt.offset, tt.lookahead)
	}
	assert.Equal(t, 0, ActiveSection(nil, 5, 0))
}

func longPanels() []panel.Panel {
	panels := threePanels()
	for i := range panels {
		panels[i].Content = panels[i].Title + " body\n" + strings.Repeat("line\n", 12)
	}
	return panels
}

func TestScrollSpy_NavigationScrollsAtOnce(t *testing.T) {
	h := newHarness(t, "", longPanels(), testOptions(core.ModeScrollSpy))
	h.c.Resize(100, 8)
	spy := h.c.spy
	require.NotNil(t, spy)
	require.Len(t, spy.offsets, 3)
	assert.Equal(t, 0, spy.offsets[0])
	assert.Greater(t, spy.offsets[1], 12)

	press(h.c, "3")
	assert.Equal(t, 2, spy.active)
	assert.Equal(t, "c", h.c.ActivePanelID())
	assert.Equal(t, "tab=c", h.history.Fragment())
	assert.Equal(t, min(spy.offsets[2], spy.vp.TotalLineCount()-spy.vp.Height), spy.vp.YOffset)

	press(h.c, "[")
	assert.Equal(t, 1, spy.active)
	assert.Equal(t, spy.offsets[1], spy.vp.YOffset)

	press(h.c, "home")
	assert.Equal(t, 0, spy.vp.YOffset)
	assert.Contains(t, h.c.View(), "▶ 1 Alpha")
}

func TestScrollSpy_AnimatedNavigation(t *testing.T) {
	opts := testOptions(core.ModeScrollSpy)
	opts.Animation = true
	h := newHarness(t, "", longPanels(), opts)
	h.c.Resize(100, 8)

	_, cmd := h.c.Update(keyMsg("2"))
	require.NotNil(t, cmd)
	spy := h.c.spy
	assert.Equal(t, 1, spy.active, "the entry is highlighted before the scroll ends")
	assert.True(t, spy.animating)

	for i := 0; i < 600 && spy.animating; i++ {
		h.c.Update(spyFrameMsg{container: h.c.ID()})
	}
	assert.False(t, spy.animating)
	assert.Equal(t, spy.offsets[1], spy.vp.YOffset)
}

func TestScrollSpy_SampleFollowsScroll(t *testing.T) {
	h := newHarness(t, "", longPanels(), testOptions(core.ModeScrollSpy))
	h.c.Resize(100, 8)
	spy := h.c.spy

	_, cmd := h.c.Update(keyMsg("down"))
	require.NotNil(t, cmd, "scrolling schedules a sample")
	assert.True(t, spy.samplePending)

	spy.vp.SetYOffset(spy.offsets[1])
	h.c.Update(spySampleMsg{container: h.c.ID()})

	assert.False(t, spy.samplePending)
	assert.Equal(t, 1, spy.active)
	assert.Equal(t, "b", h.c.ActivePanelID())
	assert.Equal(t, "", h.history.Fragment(), "scrolling never writes the address")
}

func TestScrollSpy_DeepLinkScrollsToSection(t *testing.T) {
	h := newHarness(t, "tab=b", longPanels(), testOptions(core.ModeScrollSpy))
	require.NotNil(t, h.c.spy)
	assert.Equal(t, 1, h.c.spy.active)
	assert.Equal(t, "b", h.c.ActivePanelID())
}
