// Package store holds the mutable state of one container instance. Each
// container, nested ones included, owns its own Store.
package store

import (
	"sort"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

// State is a read-only snapshot of a Store.
type State struct {
	ActivePanelID        string
	ExpandedPanelIDs     []string
	ActivatedPanelIDs    []string
	WizardCurrentStep    int
	WizardCompletedSteps []int
}

// Store is the per-instance container state. It is not safe for concurrent
// use; containers mutate it only from their event loop.
type Store struct {
	activePanelID  string
	expanded       map[string]bool
	activated      map[string]bool
	activatedOrder []string
	wizardStep     int
	wizardDone     map[int]bool
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset returns every field to its initial empty value.
func (s *Store) Reset() {
	s.activePanelID = ""
	s.expanded = make(map[string]bool)
	s.activated = make(map[string]bool)
	s.activatedOrder = nil
	s.wizardStep = 0
	s.wizardDone = make(map[int]bool)
}

// ActivePanelID returns the active panel id used by tabs and wizard modes.
func (s *Store) ActivePanelID() string {
	return s.activePanelID
}

// SetActivePanel records the active panel.
func (s *Store) SetActivePanel(id string) {
	s.activePanelID = id
}

// IsExpanded reports whether an accordion panel is open.
func (s *Store) IsExpanded(id string) bool {
	return s.expanded[id]
}

// ExpandedPanelIDs returns the open accordion panels in sorted order.
func (s *Store) ExpandedPanelIDs() []string {
	ids := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToggleAccordionPanel flips one accordion panel. Without multiExpand,
// opening a panel replaces the open set with that panel alone.
func (s *Store) ToggleAccordionPanel(id string, multiExpand bool) {
	if s.expanded[id] {
		delete(s.expanded, id)
		return
	}
	if !multiExpand {
		s.expanded = make(map[string]bool)
	}
	s.expanded[id] = true
}

// ExpandAllPanels opens every given panel regardless of the expand rule.
func (s *Store) ExpandAllPanels(ids []string) {
	for _, id := range ids {
		s.expanded[id] = true
	}
}

// CollapseAllPanels closes every accordion panel.
func (s *Store) CollapseAllPanels() {
	s.expanded = make(map[string]bool)
}

// MarkPanelActivated adds id to the activation ledger. It returns true only
// the first time an id is recorded.
func (s *Store) MarkPanelActivated(id string) bool {
	if s.activated[id] {
		return false
	}
	s.activated[id] = true
	s.activatedOrder = append(s.activatedOrder, id)
	return true
}

// IsActivated reports whether a panel has ever been shown.
func (s *Store) IsActivated(id string) bool {
	return s.activated[id]
}

// ActivatedPanelIDs returns the ledger in activation order.
func (s *Store) ActivatedPanelIDs() []string {
	out := make([]string, len(s.activatedOrder))
	copy(out, s.activatedOrder)
	return out
}

// WizardCurrentStep returns the current wizard step index.
func (s *Store) WizardCurrentStep() int {
	return s.wizardStep
}

// WizardNextStep advances one step, clamped at totalSteps-1.
func (s *Store) WizardNextStep(totalSteps int) {
	last := totalSteps - 1
	if last < 0 {
		last = 0
	}
	if s.wizardStep < last {
		s.wizardStep++
		return
	}
	s.wizardStep = last
}

// WizardPrevStep goes back one step, clamped at 0.
func (s *Store) WizardPrevStep() {
	if s.wizardStep > 0 {
		s.wizardStep--
	}
}

// WizardGoToStep jumps to step. Negative steps are ignored; the upper bound
// is the caller's to enforce because the store does not know the step count.
func (s *Store) WizardGoToStep(step int) {
	if step < 0 {
		return
	}
	s.wizardStep = step
}

// WizardMarkStepCompleted records step as completed.
func (s *Store) WizardMarkStepCompleted(step int) {
	s.wizardDone[step] = true
}

// IsStepCompleted reports whether step was marked completed.
func (s *Store) IsStepCompleted(step int) bool {
	return s.wizardDone[step]
}

// WizardCompletedSteps returns completed step indices in ascending order.
func (s *Store) WizardCompletedSteps() []int {
	steps := make([]int, 0, len(s.wizardDone))
	for step := range s.wizardDone {
		steps = append(steps, step)
	}
	sort.Ints(steps)
	return steps
}

// Snapshot copies the current state.
func (s *Store) Snapshot() State {
	return State{
		ActivePanelID:        s.activePanelID,
		ExpandedPanelIDs:     s.ExpandedPanelIDs(),
		ActivatedPanelIDs:    s.ActivatedPanelIDs(),
		WizardCurrentStep:    s.wizardStep,
		WizardCompletedSteps: s.WizardCompletedSteps(),
	}
}

// InitialActivePanel picks the active panel for a freshly resolved enabled
// panel list: the deep-linked id if it names an enabled panel, else the
// configured default if it does, else the first panel in sort order. It
// returns "" for an empty list.
func InitialActivePanel(enabled []panel.Panel, hashPanelID, defaultPanelID string) string {
	if len(enabled) == 0 {
		return ""
	}
	if hashPanelID != "" && panel.IndexOf(enabled, hashPanelID) >= 0 {
		return hashPanelID
	}
	if defaultPanelID != "" && panel.IndexOf(enabled, defaultPanelID) >= 0 {
		return defaultPanelID
	}
	return enabled[0].ID
}

// StartingPanel is the panel a container rendered in mode shows first. It
// follows InitialActivePanel except that a linear wizard always starts at
// its first step.
func StartingPanel(enabled []panel.Panel, hashPanelID, defaultPanelID string, mode core.Mode, linear bool) string {
	if mode == core.ModeWizard && linear && len(enabled) > 0 {
		return enabled[0].ID
	}
	return InitialActivePanel(enabled, hashPanelID, defaultPanelID)
}
