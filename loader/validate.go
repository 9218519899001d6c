package loader

import (
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"

	"github.com/nathoo/lumina/engine"
	"github.com/nathoo/lumina/engine/state"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for the ranges combat and the chapters
// rely on.
func validate(defs *state.Defs) error {
	ve := check(defs)
	for _, w := range ve.Warnings {
		log.Printf("warning: %s", w)
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func check(defs *state.Defs) *ValidationError {
	ve := &ValidationError{}
	p := defs.Player

	if p.Health <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("player health must be positive, got %d", p.Health))
	}
	if p.Mana < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("player mana must not be negative, got %d", p.Mana))
	}
	if p.Gold < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("player gold must not be negative, got %d", p.Gold))
	}
	if p.Weapon == "" {
		ve.Errors = append(ve.Errors, "player weapon is required")
	} else if !slices.Contains(p.Inventory, p.Weapon) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("player weapon %q is not in the starting inventory", p.Weapon))
	}
	if !slices.Contains(p.Inventory, engine.PotionName) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf("player starts without a %q", engine.PotionName))
	}

	for _, id := range engine.RequiredEnemies {
		if _, ok := defs.Enemies[id]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q is required by the story but not defined", id))
		}
	}

	ids := make([]string, 0, len(defs.Enemies))
	for id := range defs.Enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		e := defs.Enemies[id]
		if e.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q: name is required", id))
		}
		if e.Health <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q: health must be positive, got %d", id, e.Health))
		}
		if e.Damage < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q: damage must not be negative, got %d", id, e.Damage))
		}
		if e.Experience < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q: experience must not be negative, got %d", id, e.Experience))
		}
		if e.GoldMin < 0 || e.GoldMin > e.GoldMax {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q: invalid gold range [%d, %d]", id, e.GoldMin, e.GoldMax))
		}
		if !slices.Contains(engine.RequiredEnemies, id) {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("enemy %q is never fought", id))
		}
	}
	return ve
}
