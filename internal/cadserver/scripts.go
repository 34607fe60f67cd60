package cadserver

import (
	"encoding/json"
	"fmt"

	"github.com/spkane/freecad-mcp-bridge/internal/saferepr"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

// These introspection scripts mirror the real document/object tool scripts
// (internal/tools/documents.go's list_documents and get_active_document,
// internal/tools/objects.go's inspect_object), trimmed to exactly the
// fields wire.DocumentSummary/wire.ObjectDetails carry. They run against
// the same CAD interpreter every other tool script runs against — nothing
// about get_documents/get_active_document/get_object is special-cased, they
// just happen to be built into the bridge server rather than into the tool
// registry the MCP adapter forwards through.

const listDocumentsScript = `_result_ = [{"name": d.Name, "label": d.Label, "file_path": d.FileName or None, "modified": d.isModified(), "is_active": App.ActiveDocument is not None and d.Name == App.ActiveDocument.Name} for d in App.listDocuments().values()]`

const activeDocumentScript = `_result_ = None
_doc = App.ActiveDocument
if _doc is not None:
    _result_ = {"name": _doc.Name, "label": _doc.Label, "file_path": _doc.FileName or None, "modified": _doc.isModified(), "is_active": True}`

const getObjectScriptFmt = `_doc = %s
_obj = _doc.getObject(%s)
_result_ = {"name": _obj.Name, "label": _obj.Label, "type_id": _obj.TypeId, "visibility": _obj.Visibility}`

// docLookupExpr renders the document lookup expression shared by every
// object-scoped script: the named document if given, else the active one.
// Mirrors internal/tools/objects.go's docLookup, adapted from an args map
// to the plain document name Server.GetObject already carries.
func docLookupExpr(doc string) string {
	if doc == "" {
		return "App.ActiveDocument"
	}

	return fmt.Sprintf("App.getDocument(%s)", saferepr.Repr(doc))
}

// getObjectScript fills getObjectScriptFmt's document-lookup and object-name
// placeholders, escaping name through saferepr the same way every
// caller-supplied string reaches a script body in internal/tools.
func getObjectScript(doc, name string) string {
	return fmt.Sprintf(getObjectScriptFmt, docLookupExpr(doc), saferepr.Repr(name))
}

func decodeDocuments(result *wire.ExecutionResult) ([]wire.DocumentSummary, error) {
	if !result.Success {
		return nil, fmt.Errorf("%s: %s", result.ErrorKind, result.ErrorMessage)
	}

	raw, err := json.Marshal(result.Result)
	if err != nil {
		return nil, err
	}

	var docs []wire.DocumentSummary
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func decodeDocument(v any) (wire.DocumentSummary, error) {
	var doc wire.DocumentSummary

	raw, err := json.Marshal(v)
	if err != nil {
		return doc, err
	}

	err = json.Unmarshal(raw, &doc)

	return doc, err
}

func decodeObject(v any) (wire.ObjectDetails, error) {
	var obj wire.ObjectDetails

	raw, err := json.Marshal(v)
	if err != nil {
		return obj, err
	}

	err = json.Unmarshal(raw, &obj)

	return obj, err
}
