package tools

import "github.com/google/jsonschema-go/jsonschema"

// InputSchema builds the JSON Schema for a descriptor's parameters,
// following the same object/properties/required shape the SimpleSchema
// helper in the teacher's MCP wrapper used, generalized to the richer
// per-param metadata this catalog carries (types, enums, descriptions).
func (d *Descriptor) InputSchema() *jsonschema.Schema {
	if len(d.Params) == 0 {
		return &jsonschema.Schema{Type: "object"}
	}

	properties := make(map[string]*jsonschema.Schema, len(d.Params))
	required := make([]string, 0, len(d.Params))

	for _, p := range d.Params {
		properties[p.Name] = paramSchema(p)

		if p.Required {
			required = append(required, p.Name)
		}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func paramSchema(p Param) *jsonschema.Schema {
	s := &jsonschema.Schema{Description: p.Description}

	switch p.Type {
	case "array":
		s.Type = "array"
	case "object":
		s.Type = "object"
	case "number":
		s.Type = "number"
	case "boolean":
		s.Type = "boolean"
	default:
		s.Type = "string"
	}

	if len(p.Enum) > 0 {
		s.Enum = make([]any, len(p.Enum))
		for i, e := range p.Enum {
			s.Enum[i] = e
		}
	}

	return s
}
