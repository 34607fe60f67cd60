package tools

import "fmt"

// macroTools mirrors macros.py: listing, running, and managing macro
// files stored under the CAD host's user macro directory.
func macroTools() []Descriptor {
	return []Descriptor{
		{
			Name:        "list_macros",
			Category:    "macros",
			Description: "List macro files in the user macro directory.",
			Script: func(args map[string]any) string {
				return `import os
_dir = App.getUserMacroDir(True)
_result_ = sorted(f for f in os.listdir(_dir) if f.endswith(".FCMacro"))`
			},
		},
		{
			Name:        "run_macro",
			Category:    "macros",
			Description: "Execute a stored macro by file name.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Macro file name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`Gui.doCommandGui("exec(open(App.getUserMacroDir(True) + %s).read())")
_result_ = {"ran": %s}`, repr(str(args, "name")), repr(str(args, "name")))
			},
		},
		{
			Name:        "create_macro",
			Category:    "macros",
			Description: "Create a new macro file with the given source.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Macro file name.", Required: true},
				{Name: "source", Type: "string", Description: "Python source for the macro.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`with open(App.getUserMacroDir(True) + %s, "w") as _f:
    _f.write(%s)
_result_ = {"created": %s}`, repr(str(args, "name")), repr(str(args, "source")), repr(str(args, "name")))
			},
		},
		{
			Name:        "read_macro",
			Category:    "macros",
			Description: "Read a macro file's source.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Macro file name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`with open(App.getUserMacroDir(True) + %s) as _f:
    _result_ = {"source": _f.read()}`, repr(str(args, "name")))
			},
		},
		{
			Name:        "delete_macro",
			Category:    "macros",
			Description: "Delete a macro file.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Macro file name.", Required: true},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`import os
os.remove(App.getUserMacroDir(True) + %s)
_result_ = {"deleted": %s}`, repr(str(args, "name")), repr(str(args, "name")))
			},
		},
		{
			Name:        "create_macro_from_template",
			Category:    "macros",
			Description: "Create a macro file from a named built-in template.",
			Params: []Param{
				{Name: "name", Type: "string", Description: "Macro file name.", Required: true},
				{Name: "template", Type: "string", Description: "One of blank, box_and_export.", Default: "blank"},
			},
			Script: func(args map[string]any) string {
				return fmt.Sprintf(`_templates = {"blank": "# new macro\n", "box_and_export": "doc = App.newDocument()\ndoc.addObject('Part::Box')\ndoc.recompute()\n"}
with open(App.getUserMacroDir(True) + %s, "w") as _f:
    _f.write(_templates.get(%s, _templates["blank"]))
_result_ = {"created": %s}`, repr(str(args, "name")), repr(strOr(args, "template", "blank")), repr(str(args, "name")))
			},
		},
	}
}
