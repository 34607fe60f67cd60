package tools

import "fmt"

// objectTools mirrors objects.py: generic object inspection/editing plus
// primitive creation, transforms, boolean ops, and selection management.
func objectTools() []Descriptor {
	ds := []Descriptor{
		{
			Name:        "list_objects",
			Category:    "objects",
			Description: "List every object in a document.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_result_ = [{"name": o.Name, "label": o.Label, "type_id": o.TypeId} for o in _doc.Objects]`, docLookup(args))
			},
		},
		{
			Name:        "inspect_object",
			Category:    "objects",
			Description: "Return the full property set of a named object.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_obj = _doc.getObject(%s)
_result_ = {"name": _obj.Name, "label": _obj.Label, "type_id": _obj.TypeId, "visibility": _obj.Visibility, "properties": {p: str(getattr(_obj, p, None)) for p in _obj.PropertiesList}}`, docLookup(args), repr(str(args, "name")))
			},
		},
		{
			Name:        "create_object",
			Category:    "objects",
			Description: "Create a raw object of an arbitrary FreeCAD type.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "type_id", Type: "string", Description: "FreeCAD TypeId, e.g. Part::Box.", Required: true},
				{Name: "name", Type: "string", Description: "Internal object name."},
			},
			Script: func(args map[string]any) string {
				name := str(args, "name")
				nameArg := "None"

				if name != "" {
					nameArg = repr(name)
				}

				return fmt.Sprintf(`_doc = %s
_obj = _doc.addObject(%s, %s)
_doc.recompute()
_result_ = {"name": _obj.Name, "type_id": _obj.TypeId}`, docLookup(args), repr(str(args, "type_id")), nameArg)
			},
		},
	}

	ds = append(ds, primitiveDescriptor("create_box", "Part::Box", []Param{
		{Name: "length", Type: "number", Default: 10.0},
		{Name: "width", Type: "number", Default: 10.0},
		{Name: "height", Type: "number", Default: 10.0},
	}, func(args map[string]any) string {
		return fmt.Sprintf("_obj.Length = %s\n_obj.Width = %s\n_obj.Height = %s",
			repr(numOr(args, "length", 10)), repr(numOr(args, "width", 10)), repr(numOr(args, "height", 10)))
	}))

	ds = append(ds, primitiveDescriptor("create_cylinder", "Part::Cylinder", []Param{
		{Name: "radius", Type: "number", Default: 5.0},
		{Name: "height", Type: "number", Default: 10.0},
	}, func(args map[string]any) string {
		return fmt.Sprintf("_obj.Radius = %s\n_obj.Height = %s", repr(numOr(args, "radius", 5)), repr(numOr(args, "height", 10)))
	}))

	ds = append(ds, primitiveDescriptor("create_sphere", "Part::Sphere", []Param{
		{Name: "radius", Type: "number", Default: 5.0},
	}, func(args map[string]any) string {
		return fmt.Sprintf("_obj.Radius = %s", repr(numOr(args, "radius", 5)))
	}))

	ds = append(ds, primitiveDescriptor("create_cone", "Part::Cone", []Param{
		{Name: "radius1", Type: "number", Default: 5.0},
		{Name: "radius2", Type: "number", Default: 0.0},
		{Name: "height", Type: "number", Default: 10.0},
	}, func(args map[string]any) string {
		return fmt.Sprintf("_obj.Radius1 = %s\n_obj.Radius2 = %s\n_obj.Height = %s",
			repr(numOr(args, "radius1", 5)), repr(numOr(args, "radius2", 0)), repr(numOr(args, "height", 10)))
	}))

	ds = append(ds, primitiveDescriptor("create_torus", "Part::Torus", []Param{
		{Name: "radius1", Type: "number", Default: 10.0},
		{Name: "radius2", Type: "number", Default: 2.0},
	}, func(args map[string]any) string {
		return fmt.Sprintf("_obj.Radius1 = %s\n_obj.Radius2 = %s", repr(numOr(args, "radius1", 10)), repr(numOr(args, "radius2", 2)))
	}))

	ds = append(ds, primitiveDescriptor("create_wedge", "Part::Wedge", nil, func(args map[string]any) string {
		return ""
	}))

	ds = append(ds, primitiveDescriptor("create_helix", "Part::Helix", []Param{
		{Name: "pitch", Type: "number", Default: 1.0},
		{Name: "height", Type: "number", Default: 10.0},
		{Name: "radius", Type: "number", Default: 5.0},
	}, func(args map[string]any) string {
		return fmt.Sprintf("_obj.Pitch = %s\n_obj.Height = %s\n_obj.Radius = %s",
			repr(numOr(args, "pitch", 1)), repr(numOr(args, "height", 10)), repr(numOr(args, "radius", 5)))
	}))

	ds = append(ds,
		Descriptor{
			Name:        "edit_object",
			Category:    "objects",
			Description: "Set one or more properties on an existing object.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "properties", Type: "object", Description: "Map of property name to new value.", Required: true},
			},
			Script: func(args map[string]any) string {
				props, _ := args["properties"].(map[string]any)
				assigns := ""

				for k, v := range props {
					assigns += fmt.Sprintf("setattr(_obj, %s, %s)\n", repr(k), repr(v))
				}

				return fmt.Sprintf(`_doc = %s
_obj = _doc.getObject(%s)
%s_doc.recompute()
_result_ = {"name": _obj.Name}`, docLookup(args), repr(str(args, "name")), assigns)
			},
		},
		Descriptor{
			Name:        "delete_object",
			Category:    "objects",
			Description: "Delete a named object from its document.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_doc.removeObject(%s)
_doc.recompute()
_result_ = {"deleted": %s}`, docLookup(args), repr(str(args, "name")), repr(str(args, "name")))
			},
		},
		Descriptor{
			Name:        "boolean_operation",
			Category:    "objects",
			Description: "Combine two objects with a boolean operation (union, cut, or common).",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "operation", Type: "string", Description: "One of union, cut, common.", Required: true, Enum: []string{"union", "cut", "common"}},
				{Name: "base", Type: "string", Description: "Base object name.", Required: true},
				{Name: "tool", Type: "string", Description: "Tool object name.", Required: true},
			},
			Script: func(args map[string]any) string {
				opType := map[string]string{"union": "Part::MultiFuse", "cut": "Part::Cut", "common": "Part::MultiCommon"}[str(args, "operation")]

				return fmt.Sprintf(`_doc = %s
_base = _doc.getObject(%s)
_tool = _doc.getObject(%s)
_obj = _doc.addObject(%s, %s)
_obj.Base = _base
_obj.Tool = _tool
_doc.recompute()
_result_ = {"name": _obj.Name, "type_id": _obj.TypeId}`, docLookup(args), repr(str(args, "base")), repr(str(args, "tool")),
					repr(opType), repr(str(args, "operation")+"_result"))
			},
		},
		Descriptor{
			Name:        "set_placement",
			Category:    "objects",
			Description: "Set an object's position and rotation.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "position", Type: "array", Description: "[x, y, z] in mm."},
				{Name: "rotation_axis", Type: "array", Description: "[x, y, z] rotation axis."},
				{Name: "rotation_angle", Type: "number", Description: "Rotation angle in degrees."},
			},
			Script: func(args map[string]any) string {
				pos := args["position"]
				axis := args["rotation_axis"]
				angle := numOr(args, "rotation_angle", 0)

				return fmt.Sprintf(`_doc = %s
_obj = _doc.getObject(%s)
_obj.Placement = App.Placement(App.Vector(*%s), App.Rotation(App.Vector(*%s), %s))
_doc.recompute()
_result_ = {"name": _obj.Name}`, docLookup(args), repr(str(args, "name")), repr(pos), repr(axis), repr(angle))
			},
		},
		Descriptor{
			Name:        "scale_object",
			Category:    "objects",
			Description: "Apply a non-uniform scale to an object via a Draft Scale clone.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "factor", Type: "array", Description: "[sx, sy, sz] scale factors.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_obj = _doc.getObject(%s)
_scaled = Draft.scale([_obj], scale=App.Vector(*%s), copy=True)
_doc.recompute()
_result_ = {"name": _scaled.Name}`, docLookup(args), repr(str(args, "name")), repr(args["factor"]))
			},
		},
		Descriptor{
			Name:        "rotate_object",
			Category:    "objects",
			Description: "Rotate an object about an axis by an angle in degrees.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "axis", Type: "array", Description: "[x, y, z] rotation axis.", Default: []any{0.0, 0.0, 1.0}},
				{Name: "angle", Type: "number", Description: "Angle in degrees.", Required: true},
			},
			Script: func(args map[string]any) string {
				axis := args["axis"]
				if axis == nil {
					axis = []any{0.0, 0.0, 1.0}
				}

				return fmt.Sprintf(`_doc = %s
_obj = _doc.getObject(%s)
_obj.Placement.Rotation = App.Rotation(App.Vector(*%s), %s).multiply(_obj.Placement.Rotation)
_doc.recompute()
_result_ = {"name": _obj.Name}`, docLookup(args), repr(str(args, "name")), repr(axis), repr(numOr(args, "angle", 0)))
			},
		},
		Descriptor{
			Name:        "copy_object",
			Category:    "objects",
			Description: "Create an independent copy of an object.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object to copy.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_src = _doc.getObject(%s)
_copies = App.ActiveDocument.copyObject(_src, False)
_doc.recompute()
_result_ = {"name": _copies.Name}`, docLookup(args), repr(str(args, "name")))
			},
		},
		Descriptor{
			Name:        "mirror_object",
			Category:    "objects",
			Description: "Mirror an object across a plane through a point.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Object name.", Required: true},
				{Name: "plane_normal", Type: "array", Description: "[x, y, z] plane normal.", Default: []any{1.0, 0.0, 0.0}},
			},
			Script: func(args map[string]any) string {
				normal := args["plane_normal"]
				if normal == nil {
					normal = []any{1.0, 0.0, 0.0}
				}

				return fmt.Sprintf(`_doc = %s
_obj = _doc.getObject(%s)
_mirror = Draft.mirror(_obj, App.Vector(0, 0, 0), App.Vector(*%s))
_doc.recompute()
_result_ = {"name": _mirror.Name}`, docLookup(args), repr(str(args, "name")), repr(normal))
			},
		},
		Descriptor{
			Name:        "get_selection",
			Category:    "objects",
			Description: "Return the names of currently selected objects.",
			RequiresUI:  true,
			Script: func(args map[string]any) string {
				return uiGuard + `_result_ = [o.Name for o in Gui.Selection.getSelection()]`
			},
		},
		Descriptor{
			Name:        "set_selection",
			Category:    "objects",
			Description: "Replace the current selection with the named objects.",
			RequiresUI:  true,
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "names", Type: "array", Description: "Object names to select.", Required: true},
			},
			Script: func(args map[string]any) string {
				return uiGuard + fmt.Sprintf(`Gui.Selection.clearSelection()
_doc = %s
for _n in %s:
    Gui.Selection.addSelection(_doc.Name, _n)
_result_ = {"selected": %s}`, docLookup(args), repr(args["names"]), repr(args["names"]))
			},
		},
		Descriptor{
			Name:        "clear_selection",
			Category:    "objects",
			Description: "Clear the current selection.",
			RequiresUI:  true,
			Script: func(args map[string]any) string {
				return uiGuard + `Gui.Selection.clearSelection()
_result_ = {"cleared": True}`
			},
		},
	)

	return ds
}

// docLookup renders the document lookup expression shared by nearly every
// object-tool script: the named document if given, else the active one.
func docLookup(args map[string]any) string {
	if name := str(args, "document"); name != "" {
		return fmt.Sprintf("App.getDocument(%s)", repr(name))
	}

	return "App.ActiveDocument"
}

// primitiveDescriptor builds the common create_<shape> pattern: addObject
// of a fixed TypeId, apply shape-specific properties, recompute.
func primitiveDescriptor(name, typeID string, params []Param, props func(args map[string]any) string) Descriptor {
	allParams := append([]Param{
		{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
		{Name: "name", Type: "string", Description: "Internal object name."},
	}, params...)

	return Descriptor{
		Name:        name,
		Category:    "objects",
		Description: fmt.Sprintf("Create a %s primitive.", typeID),
		Params:      allParams,
		Script: func(args map[string]any) string {
			objName := str(args, "name")
			nameArg := "None"

			if objName != "" {
				nameArg = repr(objName)
			}

			body := props(args)
			if body != "" {
				body += "\n"
			}

			return fmt.Sprintf(`_doc = %s
_obj = _doc.addObject(%s, %s)
%s_doc.recompute()
_result_ = {"name": _obj.Name, "type_id": _obj.TypeId}`, docLookup(args), repr(typeID), nameArg, body)
		},
	}
}
