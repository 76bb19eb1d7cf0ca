package value

import "github.com/mathcrusader/vargen/pkg/mverrors"

type entry struct {
	kind  Kind
	value Value
	set   bool
}

// Store maps variable names to their resolved values. A name is bound
// to exactly one kind for the lifetime of a Store: once a value of a
// given kind is recorded under a name, every later write for that name
// must carry the same kind.
type Store struct {
	entries map[string]*entry
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Declare reserves name for values of kind, without yet assigning a
// value. It is a no-op if name is already declared with the same kind,
// and returns MVariableTypeMismatch if name is already declared with a
// different kind.
func (s *Store) Declare(name string, kind Kind) error {
	if e, ok := s.entries[name]; ok {
		if e.kind != kind {
			return &mverrors.MVariableTypeMismatch{ConvertingFrom: e.kind.String(), ConvertingTo: kind.String()}
		}
		return nil
	}
	s.entries[name] = &entry{kind: kind}
	return nil
}

// Set records v under name. An undeclared name is declared with v's
// kind; a name already declared with a different kind is rejected with
// MVariableTypeMismatch.
func (s *Store) Set(name string, v Value) error {
	e, ok := s.entries[name]
	if !ok {
		s.entries[name] = &entry{kind: v.Kind(), value: v, set: true}
		return nil
	}
	if e.kind != v.Kind() {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: e.kind.String(), ConvertingTo: v.Kind().String()}
	}
	e.value = v
	e.set = true
	return nil
}

// Get returns the value recorded under name. ok is false if name was
// never declared, or was declared but never assigned a value.
func (s *Store) Get(name string) (Value, bool) {
	e, ok := s.entries[name]
	if !ok || !e.set {
		return Value{}, false
	}
	return e.value, true
}

// Has reports whether name has been assigned a value.
func (s *Store) Has(name string) bool {
	e, ok := s.entries[name]
	return ok && e.set
}

// KindOf returns the kind name is declared with, if any.
func (s *Store) KindOf(name string) (Kind, bool) {
	e, ok := s.entries[name]
	if !ok {
		return 0, false
	}
	return e.kind, true
}

// Unset clears the value (but not the kind declaration) recorded under
// name, used to roll back a failed generation attempt.
func (s *Store) Unset(name string) {
	if e, ok := s.entries[name]; ok {
		e.value = Value{}
		e.set = false
	}
}

// Names returns every declared name, in no particular order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for n := range s.entries {
		names = append(names, n)
	}
	return names
}
