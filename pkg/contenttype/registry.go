package contenttype

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maps content-type ids to definitions. Definitions are validated on
// registration and returned by value, so callers never mutate shared state.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
	order       []string
}

// NewRegistry creates an empty registry, optionally seeded with definitions.
func NewRegistry(defs ...Definition) (*Registry, error) {
	reg := &Registry{definitions: make(map[string]Definition)}
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds a definition. Duplicate ids and invalid definitions return an
// error wrapping ErrInvalidDefinition.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return fmt.Errorf("contenttype: registry is nil")
	}
	def.ID = normaliseID(def.ID)
	if err := Validate(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.definitions == nil {
		r.definitions = make(map[string]Definition)
	}
	if _, exists := r.definitions[def.ID]; exists {
		return fmt.Errorf("%w: %q already registered", ErrInvalidDefinition, def.ID)
	}
	r.definitions[def.ID] = cloneDefinition(def)
	r.order = append(r.order, def.ID)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition for id or an error wrapping
// ErrUnknownContentType.
func (r *Registry) Lookup(id string) (Definition, error) {
	if r == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownContentType, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[normaliseID(id)]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownContentType, id)
	}
	return cloneDefinition(def), nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.definitions[normaliseID(id)]
	return ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// List returns every definition in registration order.
func (r *Registry) List() []Definition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneDefinition(r.definitions[id]))
	}
	return out
}

// Merge returns a new registry holding the definitions of r followed by
// overlays. An overlay with an existing id replaces that definition in place.
func (r *Registry) Merge(overlays ...Definition) (*Registry, error) {
	base := r.List()
	index := make(map[string]int, len(base))
	for i, def := range base {
		index[def.ID] = i
	}
	for _, def := range overlays {
		id := normaliseID(def.ID)
		if i, ok := index[id]; ok {
			base[i] = def
			continue
		}
		index[id] = len(base)
		base = append(base, def)
	}
	return NewRegistry(base...)
}

// Validate checks a definition for the invariants the renderers rely on.
func Validate(def Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidDefinition)
	}
	if strings.TrimSpace(def.Title) == "" {
		return fmt.Errorf("%w: %q title is required", ErrInvalidDefinition, def.ID)
	}

	fields := make(map[string]FieldDescriptor, len(def.Fields))
	for _, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: %q has a field without a name", ErrInvalidDefinition, def.ID)
		}
		if !validIdentifier(name) {
			return fmt.Errorf("%w: %q field name %q must be a letter or underscore followed by letters, digits or underscores", ErrInvalidDefinition, def.ID, name)
		}
		if _, dup := fields[name]; dup {
			return fmt.Errorf("%w: %q defines field %q twice", ErrInvalidDefinition, def.ID, name)
		}
		if !field.Kind.Valid() {
			return fmt.Errorf("%w: %q field %q has unknown kind %q", ErrInvalidDefinition, def.ID, name, field.Kind)
		}
		if field.Accept != "" && !field.IsMedia() {
			return fmt.Errorf("%w: %q field %q sets accept on a %s field", ErrInvalidDefinition, def.ID, name, field.Kind)
		}
		fields[name] = field
	}

	for i, block := range def.Layout.Blocks {
		switch block.Kind {
		case BlockHeading, BlockParagraph:
			if strings.TrimSpace(block.Text) == "" {
				return fmt.Errorf("%w: %q block %d needs text", ErrInvalidDefinition, def.ID, i)
			}
			if err := validateSnippet(block.Text, fields); err != nil {
				return fmt.Errorf("%w: %q block %d: %w", ErrInvalidDefinition, def.ID, i, err)
			}
		case BlockLines:
			field, ok := fields[block.Field]
			if !ok || field.IsMedia() {
				return fmt.Errorf("%w: %q block %d references unknown text field %q", ErrInvalidDefinition, def.ID, i, block.Field)
			}
		case BlockMedia:
			field, ok := fields[block.Field]
			if !ok || !field.IsMedia() {
				return fmt.Errorf("%w: %q block %d references unknown media field %q", ErrInvalidDefinition, def.ID, i, block.Field)
			}
		default:
			return fmt.Errorf("%w: %q block %d has unknown kind %q", ErrInvalidDefinition, def.ID, i, block.Kind)
		}
	}
	return nil
}
