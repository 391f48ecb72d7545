// Package roles maps each debate role to its fixed system instruction.
//
// A Registry is built once and never mutated, so one instance can be shared
// by every debate in the process. Alternate personas (another language, a
// softer critic) are expressed as a new Registry, typically loaded from a
// YAML override file on top of the defaults:
//
//	roles:
//	  critic: |
//	    You are a careful skeptic...
//	  adjudicator: |
//	    ...
package roles

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cpunion/claim-debate/pkg/types"
)

var (
	// ErrIncompleteRegistry indicates a role has no instruction.
	ErrIncompleteRegistry = errors.New("roles: registry is missing an instruction")
	// ErrUnknownRole indicates an instruction was supplied for an undeclared role.
	ErrUnknownRole = errors.New("roles: unknown role")
)

// Registry is a read-only role -> instruction table.
type Registry struct {
	instructions map[types.Role]string
}

// New builds a registry that must cover every declared role.
func New(instructions map[types.Role]string) (*Registry, error) {
	table := make(map[types.Role]string, len(instructions))
	for role, text := range instructions {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
		}
		table[role] = text
	}
	for _, role := range types.AllRoles() {
		if strings.TrimSpace(table[role]) == "" {
			return nil, fmt.Errorf("%w: %s", ErrIncompleteRegistry, role)
		}
	}
	return &Registry{instructions: table}, nil
}

// Default returns the built-in personas.
func Default() *Registry {
	return &Registry{instructions: defaultInstructions()}
}

// InstructionFor returns the system instruction for role.
func (r *Registry) InstructionFor(role types.Role) (string, error) {
	text, ok := r.instructions[role]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return text, nil
}

// Roles returns the covered roles in canonical order.
func (r *Registry) Roles() []types.Role {
	return types.AllRoles()
}

// With returns a copy of r with the given instructions replaced.
func (r *Registry) With(overrides map[types.Role]string) (*Registry, error) {
	merged := make(map[types.Role]string, len(r.instructions))
	for role, text := range r.instructions {
		merged[role] = text
	}
	for role, text := range overrides {
		if strings.TrimSpace(text) == "" {
			continue
		}
		merged[role] = text
	}
	return New(merged)
}

// File is the YAML layout of a persona override file.
type File struct {
	Roles map[types.Role]string `yaml:"roles"`
}

// Parse decodes a persona file and layers it over the defaults.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("roles: parse persona file: %w", err)
	}
	return Default().With(f.Roles)
}

// LoadFile reads a persona file from disk. An empty path yields the defaults.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roles: read persona file: %w", err)
	}
	return Parse(data)
}
