// Package rebase implements the interactive rebase planning engine: preview
// generation, autosquash detection and rearrangement, plan statistics, and
// serialization of a plan into a rebase todo script.
//
// Every function in this package is pure. Inputs are never mutated and no
// function performs I/O.
package rebase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned when an action name is not a rebase todo verb.
var ErrUnknownAction = errors.New("unknown rebase action")

// Action is the per-commit instruction in a rebase plan.
type Action string

const (
	ActionPick   Action = "pick"
	ActionReword Action = "reword"
	ActionEdit   Action = "edit"
	ActionSquash Action = "squash"
	ActionFixup  Action = "fixup"
	ActionDrop   Action = "drop"
)

// Actions lists every valid action in the order they are usually presented.
var Actions = []Action{ActionPick, ActionReword, ActionEdit, ActionSquash, ActionFixup, ActionDrop}

func (a Action) String() string {
	return string(a)
}

// Valid returns true if the action is one of the known todo verbs.
func (a Action) Valid() bool {
	switch a {
	case ActionPick, ActionReword, ActionEdit, ActionSquash, ActionFixup, ActionDrop:
		return true
	default:
		return false
	}
}

// IsSquashLike returns true for actions that fold a commit into the one before it.
func (a Action) IsSquashLike() bool {
	return a == ActionSquash || a == ActionFixup
}

// ParseAction parses an action name. The single-letter abbreviations accepted
// by git's todo parser (p, r, e, s, f, d) are also recognized.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pick", "p":
		return ActionPick, nil
	case "reword", "r":
		return ActionReword, nil
	case "edit", "e":
		return ActionEdit, nil
	case "squash", "s":
		return ActionSquash, nil
	case "fixup", "f":
		return ActionFixup, nil
	case "drop", "d":
		return ActionDrop, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
	}
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
