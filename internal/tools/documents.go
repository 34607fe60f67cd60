package tools

import "fmt"

// documentTools mirrors documents.py: document lifecycle operations
// (list/create/open/save/close/recompute).
func documentTools() []Descriptor {
	return []Descriptor{
		{
			Name:        "list_documents",
			Category:    "documents",
			Description: "List all open CAD documents.",
			Script: func(args map[string]any) string {
				return `_result_ = [{"name": d.Name, "label": d.Label, "path": d.FileName or None, "is_modified": d.isModified(), "object_count": len(d.Objects)} for d in App.listDocuments().values()]`
			},
		},
		{
			Name:        "get_active_document",
			Category:    "documents",
			Description: "Get the currently active CAD document, or null if none.",
			Script: func(args map[string]any) string {
				return `_result_ = None
_doc = App.ActiveDocument
if _doc is not None:
    _result_ = {"name": _doc.Name, "label": _doc.Label, "path": _doc.FileName or None, "objects": [o.Name for o in _doc.Objects]}`
			},
		},
		{
			Name:        "create_document",
			Category:    "documents",
			Description: "Create a new CAD document.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Internal document name."},
				{Name: "label", Type: "string", Description: "Display label; defaults to name."},
			},
			Script: func(args map[string]any) string {
				name := strOr(args, "name", "Unnamed")
				label := strOr(args, "label", name)

				return fmt.Sprintf(`_doc = App.newDocument(%s)
_doc.Label = %s
_result_ = {"name": _doc.Name, "label": _doc.Label, "path": _doc.FileName or None}`, repr(name), repr(label))
			},
		},
		{
			Name:        "open_document",
			Category:    "documents",
			Description: "Open an existing CAD document from a file path.",
			Params: []Param{
				{Name: "path", Type: "string", Description: "Full path to the document file.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = App.openDocument(%s)
_result_ = {"name": _doc.Name, "label": _doc.Label, "path": _doc.FileName, "objects": [o.Name for o in _doc.Objects]}`, repr(str(args, "path")))
			},
		},
		{
			Name:        "save_document",
			Category:    "documents",
			Description: "Save the named document (or the active document) to disk.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "path", Type: "string", Description: "Save-as path; defaults to the document's existing path."},
			},
			Script: func(args map[string]any) string {
				name := str(args, "name")
				path := str(args, "path")
				lookup := "App.ActiveDocument"

				if name != "" {
					lookup = fmt.Sprintf("App.getDocument(%s)", repr(name))
				}

				save := "_doc.save()"
				if path != "" {
					save = fmt.Sprintf("_doc.saveAs(%s)", repr(path))
				}

				return fmt.Sprintf(`_doc = %s
%s
_result_ = {"name": _doc.Name, "path": _doc.FileName}`, lookup, save)
			},
		},
		{
			Name:        "close_document",
			Category:    "documents",
			Description: "Close a document by name.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Document to close.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`App.closeDocument(%s)
_result_ = {"closed": %s}`, repr(str(args, "name")), repr(str(args, "name")))
			},
		},
		{
			Name:        "recompute_document",
			Category:    "documents",
			Description: "Force a recompute of the named document (or the active document).",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Document name; defaults to the active document."},
			},
			Script: func(args map[string]any) string {
				name := str(args, "name")
				lookup := "App.ActiveDocument"

				if name != "" {
					lookup = fmt.Sprintf("App.getDocument(%s)", repr(name))
				}

				return fmt.Sprintf(`_doc = %s
_doc.recompute()
_result_ = {"recomputed": _doc.Name}`, lookup)
			},
		},
	}
}
