package tools

import "fmt"

// Registry is the immutable set of every tool descriptor the MCP adapter
// registers, built once at startup.
type Registry struct {
	byName map[string]*Descriptor
	all    []*Descriptor
}

// NewRegistry builds the full catalog: document lifecycle, primitive and
// parametric object creation, PartDesign modeling, view/UI control,
// export/import, macro management, and execution/introspection (spec §4.6
// component budget, and original_source/src/freecad_mcp/tools/*.py which
// this catalog's category split and tool names are grounded on).
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Descriptor)}

	r.add(documentTools()...)
	r.add(objectTools()...)
	r.add(partDesignTools()...)
	r.add(viewTools()...)
	r.add(exportTools()...)
	r.add(macroTools()...)
	r.add(executionTools()...)

	return r
}

func (r *Registry) add(ds ...Descriptor) {
	for i := range ds {
		d := ds[i]
		if _, exists := r.byName[d.Name]; exists {
			panic(fmt.Sprintf("duplicate tool descriptor %q", d.Name))
		}

		r.byName[d.Name] = &d
		r.all = append(r.all, &d)
	}
}

// All returns every descriptor, in registration order.
func (r *Registry) All() []*Descriptor { return r.all }

// Get looks up a descriptor by name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]

	return d, ok
}

// Len reports the catalog size.
func (r *Registry) Len() int { return len(r.all) }
