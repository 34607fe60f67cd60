package tools

import "fmt"

// exportTools mirrors export.py: format-specific export and import via
// FreeCAD's Import/Mesh workbenches.
func exportTools() []Descriptor {
	formats := []struct {
		name, module, ext string
	}{
		{"export_step", "Import", "step"},
		{"export_iges", "Import", "iges"},
		{"export_stl", "Mesh", "stl"},
		{"export_obj", "Mesh", "obj"},
		{"export_3mf", "Mesh", "3mf"},
	}

	ds := make([]Descriptor, 0, len(formats)+2)

	for _, f := range formats {
		f := f
		ds = append(ds, Descriptor{
			Name:        f.name,
			Category:    "export",
			Description: fmt.Sprintf("Export objects from a document to a .%s file.", f.ext),
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "objects", Type: "array", Description: "Object names to export; defaults to the whole document."},
				{Name: "path", Type: "string", Description: "Output file path.", Required: true},
			},
			Script: func(args map[string]any) string {
				objs := "_doc.Objects"
				if raw, ok := args["objects"]; ok {
					objs = fmt.Sprintf("[_doc.getObject(n) for n in %s]", repr(raw))
				}

				exportCall := fmt.Sprintf("%s.export(%s, %s)", f.module, objs, repr(str(args, "path")))
				if f.module == "Mesh" {
					exportCall = fmt.Sprintf("Mesh.export(%s, %s)", objs, repr(str(args, "path")))
				}

				return fmt.Sprintf(`_doc = %s
import %s
%s
_result_ = {"path": %s}`, docLookup(args), f.module, exportCall, repr(str(args, "path")))
			},
		})
	}

	ds = append(ds,
		Descriptor{
			Name:        "import_step",
			Category:    "export",
			Description: "Import a STEP file into a document.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Target document; defaults to the active document."},
				{Name: "path", Type: "string", Description: "Path to the .step/.stp file.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
import Import
Import.insert(%s, _doc.Name)
_doc.recompute()
_result_ = {"imported": %s}`, docLookup(args), repr(str(args, "path")), repr(str(args, "path")))
			},
		},
		Descriptor{
			Name:        "import_stl",
			Category:    "export",
			Description: "Import an STL mesh into a document.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Target document; defaults to the active document."},
				{Name: "path", Type: "string", Description: "Path to the .stl file.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
import Mesh
Mesh.insert(%s, _doc.Name)
_doc.recompute()
_result_ = {"imported": %s}`, docLookup(args), repr(str(args, "path")), repr(str(args, "path")))
			},
		},
	)

	return ds
}
