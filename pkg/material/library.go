package material

import "fmt"

// Handle refers to a material stored in a Library
type Handle uint32

// Library owns the materials of a scene. Shapes refer to materials through handles, so any
// number of shapes can share one material. A Library must not be modified while a render
// is reading it.
type Library struct {
	materials []Material
	names     map[string]Handle
}

// NewLibrary creates an empty material library
func NewLibrary() *Library {
	return &Library{names: make(map[string]Handle)}
}

// Add stores m and returns its handle
func (l *Library) Add(m Material) Handle {
	l.materials = append(l.materials, m)
	return Handle(len(l.materials) - 1)
}

// AddNamed stores m under name so it can be looked up later. Re-using a name is an error.
func (l *Library) AddNamed(name string, m Material) (Handle, error) {
	if _, exists := l.names[name]; exists {
		return 0, fmt.Errorf("material %q defined twice", name)
	}
	h := l.Add(m)
	l.names[name] = h
	return h, nil
}

// Lookup returns the handle of the material registered under name
func (l *Library) Lookup(name string) (Handle, bool) {
	h, ok := l.names[name]
	return h, ok
}

// Get returns the material for h. It panics on a handle this library did not issue.
func (l *Library) Get(h Handle) Material {
	return l.materials[h]
}

// Has reports whether h was issued by this library
func (l *Library) Has(h Handle) bool {
	return int(h) < len(l.materials)
}

// Len returns the number of stored materials
func (l *Library) Len() int {
	return len(l.materials)
}

// Name returns the name h was registered under, if any
func (l *Library) Name(h Handle) (string, bool) {
	for name, handle := range l.names {
		if handle == h {
			return name, true
		}
	}
	return "", false
}
