package types

import "fmt"

// Member describes one field of a struct or union.
type Member struct {
	Name string
	Type Type
}

// Aggregate is the full definition of a struct or union kept in the tag
// registry; Type values referencing it only carry the tag identity (spec.md
// §3's "full member list kept in a process-wide tag registry").
type Aggregate struct {
	Tag        string
	IsUnion    bool
	Members    []Member
	Complete   bool // false until the member list has been supplied
}

// Registry is the "process-wide" tag registry of spec.md §3, modeled per
// Design Note 9 as an owned field on the compilation unit rather than a
// package global, so tests can reset it between runs.
type Registry struct {
	tags map[string]*Aggregate
}

// NewRegistry returns an empty tag registry.
func NewRegistry() *Registry {
	return &Registry{tags: make(map[string]*Aggregate, 16)}
}

// Declare registers an incomplete (forward) declaration of tag as a struct
// or union. Redeclaration with a compatible incomplete kind is permitted;
// declaring the same tag with a different aggregate kind is an error.
func (r *Registry) Declare(tag string, isUnion bool) (*Aggregate, error) {
	if a, ok := r.tags[tag]; ok {
		if a.IsUnion != isUnion {
			return nil, fmt.Errorf("tag %q redeclared with different aggregate kind", tag)
		}
		return a, nil
	}
	a := &Aggregate{Tag: tag, IsUnion: isUnion}
	r.tags[tag] = a
	return a, nil
}

// Define completes a previously-incomplete declaration with its member
// list. Completing an already-complete tag is a redefinition error.
func (r *Registry) Define(tag string, isUnion bool, members []Member) (*Aggregate, error) {
	a, err := r.Declare(tag, isUnion)
	if err != nil {
		return nil, err
	}
	if a.Complete {
		return nil, fmt.Errorf("redefinition of tag %q", tag)
	}
	a.Members = members
	a.Complete = true
	return a, nil
}

// Lookup returns the aggregate definition for tag, or nil if tag was never
// declared.
func (r *Registry) Lookup(tag string) *Aggregate {
	return r.tags[tag]
}

// Member looks up a named member of tag, reporting its Type and byte offset.
// ok is false if tag is undeclared, incomplete, or has no such member.
func (r *Registry) Member(tag, name string) (m Member, offset int, ok bool) {
	a := r.tags[tag]
	if a == nil || !a.Complete {
		return Member{}, 0, false
	}
	if a.IsUnion {
		for _, mem := range a.Members {
			if mem.Name == name {
				return mem, 0, true
			}
		}
		return Member{}, 0, false
	}
	off := 0
	for _, mem := range a.Members {
		al := r.Align(mem.Type)
		off = alignUp(off, al)
		if mem.Name == name {
			return mem, off, true
		}
		off += r.Size(mem.Type)
	}
	return Member{}, 0, false
}
