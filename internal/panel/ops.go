package panel

import (
	"sort"

	"github.com/google/uuid"
)

// Create returns a new enabled simple panel with a fresh unique id.
func Create(title string, sortOrder int) Panel {
	return Panel{
		ID:          "panel-" + uuid.NewString(),
		Title:       title,
		ContentType: ContentSimple,
		SortOrder:   sortOrder,
		Enabled:     true,
	}
}

// Reorder moves the panel at fromIndex to toIndex and renumbers sortOrder.
// Out-of-range or equal indices return the input unchanged.
func Reorder(panels []Panel, fromIndex, toIndex int) []Panel {
	n := len(panels)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
		return panels
	}

	out := make([]Panel, 0, n)
	out = append(out, panels[:fromIndex]...)
	out = append(out, panels[fromIndex+1:]...)

	moved := panels[fromIndex]
	out = append(out, Panel{})
	copy(out[toIndex+1:], out[toIndex:])
	out[toIndex] = moved

	return Normalize(out)
}

// Remove drops the panel with the given id and renumbers sortOrder. An
// unknown id returns the input unchanged.
func Remove(panels []Panel, id string) []Panel {
	if IndexOf(panels, id) < 0 {
		return panels
	}
	out := make([]Panel, 0, len(panels)-1)
	for _, p := range panels {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return Normalize(out)
}

// Append adds p at the end of the collection and renumbers sortOrder.
func Append(panels []Panel, p Panel) []Panel {
	out := make([]Panel, 0, len(panels)+1)
	out = append(out, panels...)
	out = append(out, p)
	return Normalize(out)
}

// Update applies fn to a copy of the panel with the given id. An unknown id
// returns the input unchanged.
func Update(panels []Panel, id string, fn func(*Panel)) []Panel {
	idx := IndexOf(panels, id)
	if idx < 0 {
		return panels
	}
	out := make([]Panel, len(panels))
	copy(out, panels)
	fn(&out[idx])
	out[idx].ID = id
	return out
}

// Normalize returns a copy whose sortOrder follows slice order as 0..n-1.
func Normalize(panels []Panel) []Panel {
	out := make([]Panel, len(panels))
	copy(out, panels)
	for i := range out {
		out[i].SortOrder = i
	}
	return out
}

// Enabled returns the enabled panels ordered by sortOrder. When two panels
// share an id only the first in sort order is kept.
func Enabled(panels []Panel) []Panel {
	out := make([]Panel, 0, len(panels))
	for _, p := range panels {
		if p.Enabled {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})

	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, p := range out {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// IndexOf returns the slice index of the panel with id, or -1.
func IndexOf(panels []Panel, id string) int {
	for i, p := range panels {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the panel with id.
func Find(panels []Panel, id string) (Panel, bool) {
	if idx := IndexOf(panels, id); idx >= 0 {
		return panels[idx], true
	}
	return Panel{}, false
}

// IDs returns the ids of panels in slice order.
func IDs(panels []Panel) []string {
	ids := make([]string, len(panels))
	for i, p := range panels {
		ids[i] = p.ID
	}
	return ids
}

// Titles returns the titles of panels in slice order.
func Titles(panels []Panel) []string {
	titles := make([]string, len(panels))
	for i, p := range panels {
		titles[i] = p.Title
	}
	return titles
}
