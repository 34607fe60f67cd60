package tools

import "fmt"

// viewTools mirrors view.py: everything that touches the 3D viewport,
// workbenches, or undo/redo history. Every entry whose script touches Gui
// requires the GUI thread and is gated (spec §4.6: "gate on ui_available(),
// never on library presence"); the undo/redo, parts-library listing,
// console-log, and recompute entries use only App and run headless.
func viewTools() []Descriptor {
	return []Descriptor{
		{
			Name:        "get_screenshot",
			Category:    "view",
			Description: "Capture the active 3D view as a base64-encoded PNG.",
			RequiresUI:  true,
			Script: func(args map[string]any) string {
				return uiGuard + `import io, base64
_buf = io.BytesIO()
Gui.ActiveDocument.ActiveView.saveImage("/tmp/_mcp_screenshot.png", 800, 600)
with open("/tmp/_mcp_screenshot.png", "rb") as _f:
    _result_ = {"png_base64": base64.b64encode(_f.read()).decode("ascii")}`
			},
		},
		{
			Name:        "set_view_angle",
			Category:    "view",
			Description: "Set the active view to a named standard angle.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "angle", Type: "string", Description: "One of Front, Top, Right, Isometric, etc.", Required: true},
			},
			Script: func(args map[string]any) string {
				return uiGuard + fmt.Sprintf(`getattr(Gui.ActiveDocument.ActiveView, "viewAxonometric" if %s == "Isometric" else "view" + %s)()
_result_ = {"angle": %s}`, repr(str(args, "angle")), repr(str(args, "angle")), repr(str(args, "angle")))
			},
		},
		{
			Name:        "list_workbenches",
			Category:    "view",
			Description: "List every workbench available in this CAD session.",
			RequiresUI:  true,
			Script: func(args map[string]any) string {
				return uiGuard + `_result_ = list(Gui.listWorkbenches().keys())`
			},
		},
		{
			Name:        "activate_workbench",
			Category:    "view",
			Description: "Switch the active workbench.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "name", Type: "string", Description: "Workbench internal name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return uiGuard + fmt.Sprintf(`Gui.activateWorkbench(%s)
_result_ = {"active": %s}`, repr(str(args, "name")), repr(str(args, "name")))
			},
		},
		{
			Name:        "fit_all",
			Category:    "view",
			Description: "Fit the active view to show all visible geometry.",
			RequiresUI:  true,
			Script: func(args map[string]any) string {
				return uiGuard + `Gui.ActiveDocument.ActiveView.fitAll()
_result_ = {"fit": True}`
			},
		},
		{
			Name:        "set_object_visibility",
			Category:    "view",
			Description: "Show or hide a named object.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "visible", Type: "boolean", Default: true},
			},
			Script: func(args map[string]any) string {
				return uiGuard + fmt.Sprintf(`_doc = %s
_doc.getObject(%s).Visibility = %s
_result_ = {"name": %s, "visible": %s}`, docLookup(args), repr(str(args, "name")), repr(boolOr(args, "visible", true)),
					repr(str(args, "name")), repr(boolOr(args, "visible", true)))
			},
		},
		{
			Name:        "set_display_mode",
			Category:    "view",
			Description: "Set an object's view provider display mode.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "mode", Type: "string", Description: "e.g. Flat Lines, Wireframe, Shaded.", Required: true},
			},
			Script: func(args map[string]any) string {
				return uiGuard + fmt.Sprintf(`_doc = %s
_doc.getObject(%s).ViewObject.DisplayMode = %s
_result_ = {"name": %s, "mode": %s}`, docLookup(args), repr(str(args, "name")), repr(str(args, "mode")), repr(str(args, "name")), repr(str(args, "mode")))
			},
		},
		{
			Name:        "set_object_color",
			Category:    "view",
			Description: "Set an object's shape color as an [r, g, b] triple in 0..1.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "color", Type: "array", Description: "[r, g, b] in 0..1.", Required: true},
			},
			Script: func(args map[string]any) string {
				return uiGuard + fmt.Sprintf(`_doc = %s
_c = %s
_doc.getObject(%s).ViewObject.ShapeColor = (_c[0], _c[1], _c[2])
_result_ = {"name": %s}`, docLookup(args), repr(args["color"]), repr(str(args, "name")), repr(str(args, "name")))
			},
		},
		{
			Name:        "zoom_in",
			Category:    "view",
			Description: "Zoom the active view in by one step.",
			RequiresUI:  true,
			Script: func(args map[string]any) string {
				return uiGuard + `Gui.ActiveDocument.ActiveView.zoomIn()
_result_ = {"zoomed": "in"}`
			},
		},
		{
			Name:        "zoom_out",
			Category:    "view",
			Description: "Zoom the active view out by one step.",
			RequiresUI:  true,
			Script: func(args map[string]any) string {
				return uiGuard + `Gui.ActiveDocument.ActiveView.zoomOut()
_result_ = {"zoomed": "out"}`
			},
		},
		{
			Name:        "set_camera_position",
			Category:    "view",
			Description: "Position the camera at an explicit eye point looking at a target.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "eye", Type: "array", Description: "[x, y, z] camera position.", Required: true},
				{Name: "target", Type: "array", Description: "[x, y, z] look-at point.", Default: []any{0.0, 0.0, 0.0}},
			},
			Script: func(args map[string]any) string {
				target := args["target"]
				if target == nil {
					target = []any{0.0, 0.0, 0.0}
				}

				return uiGuard + fmt.Sprintf(`_cam = Gui.ActiveDocument.ActiveView.getCameraNode()
Gui.ActiveDocument.ActiveView.setCameraNode(_cam)
Gui.ActiveDocument.ActiveView.viewPosition(App.Placement(App.Vector(*%s), App.Rotation()))
_result_ = {"eye": %s, "target": %s}`, repr(args["eye"]), repr(args["eye"]), repr(target))
			},
		},
		{
			Name:        "undo",
			Category:    "view",
			Description: "Undo the last document operation.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_doc.undo()
_result_ = {"undone": True}`, docLookup(args))
			},
		},
		{
			Name:        "redo",
			Category:    "view",
			Description: "Redo the last undone document operation.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_doc.redo()
_result_ = {"redone": True}`, docLookup(args))
			},
		},
		{
			Name:        "get_undo_redo_status",
			Category:    "view",
			Description: "Report whether undo and redo are currently available.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_result_ = {"can_undo": _doc.UndoCount > 0, "can_redo": _doc.RedoCount > 0}`, docLookup(args))
			},
		},
		{
			Name:        "list_parts_library",
			Category:    "view",
			Description: "List reusable parts available in the local parts library.",
			Script: func(args map[string]any) string {
				return `import os
_result_ = sorted(os.listdir(App.getUserAppDataDir() + "Parts")) if os.path.isdir(App.getUserAppDataDir() + "Parts") else []`
			},
		},
		{
			Name:        "insert_part_from_library",
			Category:    "view",
			Description: "Insert a part from the local parts library into a document.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "part", Type: "string", Description: "Library file name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return uiGuard + fmt.Sprintf(`_doc = %s
Gui.insert(App.getUserAppDataDir() + "Parts/" + %s, _doc.Name)
_doc.recompute()
_result_ = {"inserted": %s}`, docLookup(args), repr(str(args, "part")), repr(str(args, "part")))
			},
		},
		{
			Name:        "get_console_log",
			Category:    "view",
			Description: "Alias for get_console_output kept for backward compatibility with older clients.",
			Params: []Param{
				{Name: "n", Type: "number", Default: 100},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_result_ = _console_tail(%d)`, int(numOr(args, "n", 100)))
			},
		},
		{
			Name:        "recompute",
			Category:    "view",
			Description: "Recompute all open documents.",
			Script: func(args map[string]any) string {
				return `for _d in App.listDocuments().values():
    _d.recompute()
_result_ = {"recomputed": list(App.listDocuments().keys())}`
			},
		},
	}
}
