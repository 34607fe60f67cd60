package tools

import "fmt"

// partDesignTools mirrors partdesign.py: body/sketch scaffolding, sketch
// geometry, and the parametric feature operations built on top of them.
func partDesignTools() []Descriptor {
	return []Descriptor{
		{
			Name:        "create_partdesign_body",
			Category:    "partdesign",
			Description: "Create a new PartDesign body.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "name", Type: "string", Description: "Internal body name."},
			},
			Script: func(args map[string]any) string {
				name := str(args, "name")
				nameArg := "None"

				if name != "" {
					nameArg = repr(name)
				}

				return fmt.Sprintf(`_doc = %s
_body = _doc.addObject("PartDesign::Body", %s)
_doc.recompute()
_result_ = {"name": _body.Name}`, docLookup(args), nameArg)
			},
		},
		{
			Name:        "create_sketch",
			Category:    "partdesign",
			Description: "Create a sketch attached to a body on a named plane.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name to attach the sketch to.", Required: true},
				{Name: "plane", Type: "string", Description: "One of XY_Plane, XZ_Plane, YZ_Plane.", Default: "XY_Plane"},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_sketch = _body.newObject("Sketcher::SketchObject", "Sketch")
_sketch.AttachmentSupport = [(_doc.getObject(%s), '')]
_sketch.MapMode = "FlatFace"
_doc.recompute()
_result_ = {"name": _sketch.Name}`, docLookup(args), repr(str(args, "body")), repr(strOr(args, "plane", "XY_Plane")))
			},
		},
		{
			Name:        "add_sketch_rectangle",
			Category:    "partdesign",
			Description: "Add a rectangle to a sketch by two opposite corners.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "p1", Type: "array", Description: "[x, y] first corner.", Required: true},
				{Name: "p2", Type: "array", Description: "[x, y] opposite corner.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_sk = _doc.getObject(%s)
_sk.addGeometry(Part.LineSegment(App.Vector(*%s + [0]), App.Vector(%s[0], %s[1], 0)))
_doc.recompute()
_result_ = {"sketch": _sk.Name}`, docLookup(args), repr(str(args, "sketch")), repr(args["p1"]), repr(args["p2"]), repr(args["p2"]))
			},
		},
		{
			Name:        "add_sketch_circle",
			Category:    "partdesign",
			Description: "Add a circle to a sketch.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "center", Type: "array", Description: "[x, y] center.", Required: true},
				{Name: "radius", Type: "number", Description: "Circle radius.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_sk = _doc.getObject(%s)
_sk.addGeometry(Part.Circle(App.Vector(%s[0], %s[1], 0), App.Vector(0, 0, 1), %s))
_doc.recompute()
_result_ = {"sketch": _sk.Name}`, docLookup(args), repr(str(args, "sketch")), repr(args["center"]), repr(args["center"]), repr(numOr(args, "radius", 1)))
			},
		},
		{
			Name:        "add_sketch_line",
			Category:    "partdesign",
			Description: "Add a line segment to a sketch.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "p1", Type: "array", Description: "[x, y] start point.", Required: true},
				{Name: "p2", Type: "array", Description: "[x, y] end point.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_sk = _doc.getObject(%s)
_sk.addGeometry(Part.LineSegment(App.Vector(%s[0], %s[1], 0), App.Vector(%s[0], %s[1], 0)))
_doc.recompute()
_result_ = {"sketch": _sk.Name}`, docLookup(args), repr(str(args, "sketch")), repr(args["p1"]), repr(args["p1"]), repr(args["p2"]), repr(args["p2"]))
			},
		},
		{
			Name:        "add_sketch_arc",
			Category:    "partdesign",
			Description: "Add an arc to a sketch by center, radius, and start/end angles in degrees.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "center", Type: "array", Description: "[x, y] center.", Required: true},
				{Name: "radius", Type: "number", Required: true},
				{Name: "start_angle", Type: "number", Required: true},
				{Name: "end_angle", Type: "number", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_sk = _doc.getObject(%s)
import math
_sk.addGeometry(Part.ArcOfCircle(Part.Circle(App.Vector(%s[0], %s[1], 0), App.Vector(0, 0, 1), %s), math.radians(%s), math.radians(%s)))
_doc.recompute()
_result_ = {"sketch": _sk.Name}`, docLookup(args), repr(str(args, "sketch")), repr(args["center"]), repr(args["center"]),
					repr(numOr(args, "radius", 1)), repr(numOr(args, "start_angle", 0)), repr(numOr(args, "end_angle", 90)))
			},
		},
		{
			Name:        "add_sketch_point",
			Category:    "partdesign",
			Description: "Add a construction point to a sketch.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "point", Type: "array", Description: "[x, y] point.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_sk = _doc.getObject(%s)
_sk.addGeometry(Part.Point(App.Vector(%s[0], %s[1], 0)))
_doc.recompute()
_result_ = {"sketch": _sk.Name}`, docLookup(args), repr(str(args, "sketch")), repr(args["point"]), repr(args["point"]))
			},
		},
		{
			Name:        "pad_sketch",
			Category:    "partdesign",
			Description: "Extrude (pad) a sketch into solid material.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "length", Type: "number", Default: 10.0},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_pad = _body.newObject("PartDesign::Pad", "Pad")
_pad.Profile = _doc.getObject(%s)
_pad.Length = %s
_doc.recompute()
_result_ = {"name": _pad.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "sketch")), repr(numOr(args, "length", 10)))
			},
		},
		{
			Name:        "pocket_sketch",
			Category:    "partdesign",
			Description: "Cut (pocket) a sketch out of solid material.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "depth", Type: "number", Default: 5.0},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_pocket = _body.newObject("PartDesign::Pocket", "Pocket")
_pocket.Profile = _doc.getObject(%s)
_pocket.Length = %s
_doc.recompute()
_result_ = {"name": _pocket.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "sketch")), repr(numOr(args, "depth", 5)))
			},
		},
		{
			Name:        "fillet_edges",
			Category:    "partdesign",
			Description: "Fillet the named edges of an object.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "object", Type: "string", Description: "Object owning the edges.", Required: true},
				{Name: "edges", Type: "array", Description: "Edge indices (1-based).", Required: true},
				{Name: "radius", Type: "number", Default: 1.0},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_base = _doc.getObject(%s)
_edges = [(_base, "Edge%%d" %% i) for i in %s]
_fillet = _doc.addObject("PartDesign::Fillet", "Fillet")
_fillet.Base = _edges
_fillet.Radius = %s
_doc.recompute()
_result_ = {"name": _fillet.Name}`, docLookup(args), repr(str(args, "object")), repr(args["edges"]), repr(numOr(args, "radius", 1)))
			},
		},
		{
			Name:        "chamfer_edges",
			Category:    "partdesign",
			Description: "Chamfer the named edges of an object.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "object", Type: "string", Description: "Object owning the edges.", Required: true},
				{Name: "edges", Type: "array", Description: "Edge indices (1-based).", Required: true},
				{Name: "size", Type: "number", Default: 1.0},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_base = _doc.getObject(%s)
_edges = [(_base, "Edge%%d" %% i) for i in %s]
_chamfer = _doc.addObject("PartDesign::Chamfer", "Chamfer")
_chamfer.Base = _edges
_chamfer.Size = %s
_doc.recompute()
_result_ = {"name": _chamfer.Name}`, docLookup(args), repr(str(args, "object")), repr(args["edges"]), repr(numOr(args, "size", 1)))
			},
		},
		{
			Name:        "revolution_sketch",
			Category:    "partdesign",
			Description: "Revolve a sketch around an axis.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "angle", Type: "number", Default: 360.0},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_rev = _body.newObject("PartDesign::Revolution", "Revolution")
_rev.Profile = _doc.getObject(%s)
_rev.Angle = %s
_doc.recompute()
_result_ = {"name": _rev.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "sketch")), repr(numOr(args, "angle", 360)))
			},
		},
		{
			Name:        "groove_sketch",
			Category:    "partdesign",
			Description: "Revolve a sketch to remove material (groove).",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "sketch", Type: "string", Description: "Sketch name.", Required: true},
				{Name: "angle", Type: "number", Default: 360.0},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_groove = _body.newObject("PartDesign::Groove", "Groove")
_groove.Profile = _doc.getObject(%s)
_groove.Angle = %s
_doc.recompute()
_result_ = {"name": _groove.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "sketch")), repr(numOr(args, "angle", 360)))
			},
		},
		{
			Name:        "create_hole",
			Category:    "partdesign",
			Description: "Add a parametric hole feature on a sketch.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "sketch", Type: "string", Description: "Sketch of hole locations.", Required: true},
				{Name: "diameter", Type: "number", Default: 5.0},
				{Name: "depth", Type: "number", Default: 10.0},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_hole = _body.newObject("PartDesign::Hole", "Hole")
_hole.Profile = _doc.getObject(%s)
_hole.Diameter = %s
_hole.Depth = %s
_doc.recompute()
_result_ = {"name": _hole.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "sketch")), repr(numOr(args, "diameter", 5)), repr(numOr(args, "depth", 10)))
			},
		},
		{
			Name:        "linear_pattern",
			Category:    "partdesign",
			Description: "Repeat a feature along a direction a fixed number of times.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "feature", Type: "string", Description: "Feature to pattern.", Required: true},
				{Name: "direction", Type: "array", Description: "[x, y, z] direction.", Default: []any{1.0, 0.0, 0.0}},
				{Name: "length", Type: "number", Default: 10.0},
				{Name: "count", Type: "number", Default: 2.0},
			},
			Script: func(args map[string]any) string {
				dir := args["direction"]
				if dir == nil {
					dir = []any{1.0, 0.0, 0.0}
				}

				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_pat = _body.newObject("PartDesign::LinearPattern", "LinearPattern")
_pat.Originals = [_doc.getObject(%s)]
_pat.Direction = App.Vector(*%s)
_pat.Length = %s
_pat.Occurrences = %d
_doc.recompute()
_result_ = {"name": _pat.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "feature")), repr(dir),
					repr(numOr(args, "length", 10)), int(numOr(args, "count", 2)))
			},
		},
		{
			Name:        "polar_pattern",
			Category:    "partdesign",
			Description: "Repeat a feature around an axis a fixed number of times.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "feature", Type: "string", Description: "Feature to pattern.", Required: true},
				{Name: "axis", Type: "array", Description: "[x, y, z] axis.", Default: []any{0.0, 0.0, 1.0}},
				{Name: "angle", Type: "number", Default: 360.0},
				{Name: "count", Type: "number", Default: 4.0},
			},
			Script: func(args map[string]any) string {
				axis := args["axis"]
				if axis == nil {
					axis = []any{0.0, 0.0, 1.0}
				}

				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_pat = _body.newObject("PartDesign::PolarPattern", "PolarPattern")
_pat.Originals = [_doc.getObject(%s)]
_pat.Axis = App.Vector(*%s)
_pat.Angle = %s
_pat.Occurrences = %d
_doc.recompute()
_result_ = {"name": _pat.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "feature")), repr(axis),
					repr(numOr(args, "angle", 360)), int(numOr(args, "count", 4)))
			},
		},
		{
			Name:        "mirrored_feature",
			Category:    "partdesign",
			Description: "Mirror a feature across a plane.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "feature", Type: "string", Description: "Feature to mirror.", Required: true},
				{Name: "plane", Type: "string", Description: "One of XY_Plane, XZ_Plane, YZ_Plane.", Default: "YZ_Plane"},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_mir = _body.newObject("PartDesign::Mirrored", "Mirrored")
_mir.Originals = [_doc.getObject(%s)]
_mir.MirrorPlane = (_doc.getObject(%s), '')
_doc.recompute()
_result_ = {"name": _mir.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "feature")), repr(strOr(args, "plane", "YZ_Plane")))
			},
		},
		{
			Name:        "loft_sketches",
			Category:    "partdesign",
			Description: "Loft a solid through an ordered list of sketch sections.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "sections", Type: "array", Description: "Ordered sketch names.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_loft = _body.newObject("PartDesign::AdditiveLoft", "Loft")
_names = %s
_loft.Profile = _doc.getObject(_names[0])
_loft.Sections = [_doc.getObject(n) for n in _names[1:]]
_doc.recompute()
_result_ = {"name": _loft.Name}`, docLookup(args), repr(str(args, "body")), repr(args["sections"]))
			},
		},
		{
			Name:        "sweep_sketch",
			Category:    "partdesign",
			Description: "Sweep a profile sketch along a spine sketch.",
			Params: []Param{
				{Name: "document", Type: "string", Description: "Document name; defaults to the active document."},
				{Name: "body", Type: "string", Description: "Body name.", Required: true},
				{Name: "profile", Type: "string", Description: "Profile sketch name.", Required: true},
				{Name: "spine", Type: "string", Description: "Spine sketch name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_doc = %s
_body = _doc.getObject(%s)
_sweep = _body.newObject("PartDesign::AdditivePipe", "Sweep")
_sweep.Profile = _doc.getObject(%s)
_sweep.Spine = (_doc.getObject(%s), [''])
_doc.recompute()
_result_ = {"name": _sweep.Name}`, docLookup(args), repr(str(args, "body")), repr(str(args, "profile")), repr(str(args, "spine")))
			},
		},
	}
}
