package panel

import (
	"errors"
	"fmt"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/core"
)

// Validate checks the collection invariants: unique non-empty ids, a dense
// sortOrder permutation, known content types and well-formed nested configs.
// Nested collections are checked recursively. It returns nil or an error
// joining every problem found.
func Validate(panels []Panel) error {
	return errors.Join(validate(panels, "")...)
}

func validate(panels []Panel, path string) []error {
	var errs []error
	seen := make(map[string]bool, len(panels))
	orders := make(map[int]bool, len(panels))

	for i, p := range panels {
		where := fmt.Sprintf("%spanels[%d]", path, i)
		if p.ID == "" {
			errs = append(errs, core.ErrValidation(core.CodeEmptyID, where+": empty id"))
		} else if seen[p.ID] {
			errs = append(errs, core.ErrValidation(core.CodeDuplicateID,
				fmt.Sprintf("%s: duplicate id %q", where, p.ID)))
		}
		seen[p.ID] = true
		orders[p.SortOrder] = true

		if !IsValidContentType(p.ContentType) {
			errs = append(errs, core.ErrValidation(core.CodeContentType,
				fmt.Sprintf("%s: unknown content type %q", where, p.ContentType)))
		}

		switch {
		case p.IsNested() && p.NestedConfig == nil:
			errs = append(errs, core.ErrValidation(core.CodeNestedConfig, where+": nested panel without nestedConfig"))
		case !p.IsNested() && p.NestedConfig != nil:
			errs = append(errs, core.ErrValidation(core.CodeNestedConfig, where+": nestedConfig on non-nested panel"))
		case p.NestedConfig != nil:
			if m := p.NestedConfig.Mode; m != core.ModeTabs && m != core.ModeAccordion {
				errs = append(errs, core.ErrValidation(core.CodeNestedConfig,
					fmt.Sprintf("%s: nested mode %q must be tabs or accordion", where, m)))
			}
			errs = append(errs, validate(p.NestedConfig.Panels, where+".nestedConfig.")...)
		}
	}

	for i := range panels {
		if !orders[i] {
			errs = append(errs, core.ErrValidation(core.CodeSortOrder,
				fmt.Sprintf("%spanels: sortOrder is not a permutation of 0..%d", path, len(panels)-1)))
			break
		}
	}
	return errs
}
