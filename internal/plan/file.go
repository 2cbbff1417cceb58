package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/git"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"

	"gopkg.in/yaml.v3"
)

// Supported plan file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrInvalidPlan is returned when a plan file is malformed.
var ErrInvalidPlan = errors.New("invalid plan")

// maxIDLength fits a SHA-256 object id.
const maxIDLength = 64

// LoadFromFile reads a plan file.
func LoadFromFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a plan in YAML or JSON form. Documents starting with
// '{' are read as JSON so the camelCase keys written by Write are honored.
func LoadFromBytes(data []byte) (*Plan, error) {
	var p Plan

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidPlan)
	}

	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("%w: parsing json: %w", ErrInvalidPlan, err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("%w: parsing yaml: %w", ErrInvalidPlan, err)
		}
	}

	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Write encodes the plan to w in the given format.
func (p *Plan) Write(w io.Writer, format string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown plan format %q", format)
	}
}

// WriteFile writes the plan to path, replacing any existing file.
func (p *Plan) WriteFile(path, format string) error {
	var buf bytes.Buffer
	if err := p.Write(&buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}

// Normalize fills defaults left out of hand-written plan files: a missing
// action means pick and a missing short id is derived from the full id.
// Entries without any id, ids that are not hex object names, and commits
// listed twice are rejected.
func (p *Plan) Normalize() error {
	seen := make(map[string]int, len(p.Commits))

	for i := range p.Commits {
		c := &p.Commits[i]

		if c.OID == "" && c.ShortID == "" {
			return fmt.Errorf("%w: commit %d has no id", ErrInvalidPlan, i)
		}
		if c.ShortID == "" {
			c.ShortID = shorten(c.OID)
		}
		if c.OID == "" {
			c.OID = c.ShortID
		}
		if c.Action == "" {
			c.Action = rebase.ActionPick
		}
		if err := checkIDs(i, *c); err != nil {
			return err
		}

		if prev, ok := seen[c.OID]; ok {
			return fmt.Errorf("%w: commit %s listed at %d and %d", ErrInvalidPlan, c.ShortID, prev, i)
		}
		seen[c.OID] = i
	}
	return nil
}

// checkIDs rejects ids that could not have come from git. Ids are written
// verbatim into todo lines, so anything but hex digits would change the
// script git runs.
func checkIDs(i int, c rebase.EditableCommit) error {
	if !isHexID(c.OID) {
		return fmt.Errorf("%w: commit %d: oid %q is not a hex object name", ErrInvalidPlan, i, c.OID)
	}
	if !isHexID(c.ShortID) {
		return fmt.Errorf("%w: commit %d: short-id %q is not a hex object name", ErrInvalidPlan, i, c.ShortID)
	}
	if !strings.HasPrefix(strings.ToLower(c.OID), strings.ToLower(c.ShortID)) {
		return fmt.Errorf("%w: commit %d: short-id %s is not a prefix of %s", ErrInvalidPlan, i, c.ShortID, c.OID)
	}
	return nil
}

func isHexID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func shorten(oid string) string {
	if len(oid) <= git.DefaultShortShaLength {
		return oid
	}
	return oid[:git.DefaultShortShaLength]
}
