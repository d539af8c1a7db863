package container

// Entry is one service registration: a symbolic name bound to a concrete
// type name and a lifecycle flag.
//
//	// services.yaml
//	// providers:
//	//   mailer: [services.Mailer, true]
//	container.Entry{Name: "mailer", Type: "services.Mailer", Singleton: true}
type Entry struct {
	Name      string
	Type      string
	Singleton bool
}

// Registry is the ordered, read-only set of service entries loaded from
// configuration. Lookups by type return the first entry in declaration order.
type Registry struct {
	entries []Entry
	byName  map[string]int
}

// NewRegistry builds a Registry. A repeated name replaces the earlier entry
// in place, keeping its original position.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{byName: make(map[string]int, len(entries))}
	for _, e := range entries {
		if i, ok := r.byName[e.Name]; ok {
			r.entries[i] = e
			continue
		}
		r.byName[e.Name] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	i, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// NameForType returns the first symbolic name bound to typ.
func (r *Registry) NameForType(typ string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, e := range r.entries {
		if e.Type == typ {
			return e.Name, true
		}
	}
	return "", false
}

// Entries returns a copy of all entries in declaration order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
