// Package resources defines the MCP resources this bridge exposes
// (spec §4.6/§9, component C7): a capabilities catalog that is the
// single source of truth for what the adapter has registered, plus a
// handful of read-only introspection resources over the live CAD session.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spkane/freecad-mcp-bridge/internal/bridgeclient"
	"github.com/spkane/freecad-mcp-bridge/internal/tools"
)

// Descriptor is one MCP resource: a URI, its metadata, and the handler
// that reads it.
type Descriptor struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Read        func(ctx context.Context) ([]byte, error)
}

// Registry holds every resource the adapter serves.
type Registry struct {
	all []*Descriptor
}

// scheme is the URI scheme every resource in this registry uses.
const scheme = "freecad-bridge"

// NewRegistry builds the resource set: the capabilities manifest (spec §9,
// "the single source of truth for MCP discovery") plus live document and
// console resources, both backed by the same Client the tool handlers use.
func NewRegistry(toolReg *tools.Registry, client bridgeclient.Client) *Registry {
	r := &Registry{}

	r.all = append(r.all,
		&Descriptor{
			URI:         scheme + "://capabilities",
			Name:        "capabilities",
			Description: "Catalog of every tool and resource this bridge exposes, generated from the live registries.",
			MIMEType:    "application/json",
			Read: func(ctx context.Context) ([]byte, error) {
				return capabilitiesManifest(toolReg, r), nil
			},
		},
		&Descriptor{
			URI:         scheme + "://documents",
			Name:        "documents",
			Description: "Currently open CAD documents.",
			MIMEType:    "application/json",
			Read: func(ctx context.Context) ([]byte, error) {
				docs, err := client.GetDocuments(ctx)
				if err != nil {
					return nil, err
				}

				return json.Marshal(docs)
			},
		},
		&Descriptor{
			URI:         scheme + "://console",
			Name:        "console",
			Description: "Recent CAD console output.",
			MIMEType:    "text/plain",
			Read: func(ctx context.Context) ([]byte, error) {
				lines, err := client.GetConsoleOutput(ctx, 200)
				if err != nil {
					return nil, err
				}

				out := ""
				for _, l := range lines {
					out += l + "\n"
				}

				return []byte(out), nil
			},
		},
	)

	return r
}

// All returns every registered resource.
func (r *Registry) All() []*Descriptor { return r.all }

// Get looks up a resource by URI.
func (r *Registry) Get(uri string) (*Descriptor, bool) {
	for _, d := range r.all {
		if d.URI == uri {
			return d, true
		}
	}

	return nil, false
}

type toolSummary struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	RequiresUI  bool     `json:"requires_ui"`
	Params      []string `json:"params"`
}

type resourceSummary struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type manifest struct {
	Tools     []toolSummary     `json:"tools"`
	Resources []resourceSummary `json:"resources"`
}

// capabilitiesManifest builds the manifest straight from the live tool and
// resource registries, so it can never drift out of sync with what the
// adapter actually dispatches (spec §9's testable property).
func capabilitiesManifest(toolReg *tools.Registry, resourceReg *Registry) []byte {
	m := manifest{}

	for _, t := range toolReg.All() {
		paramNames := make([]string, len(t.Params))
		for i, p := range t.Params {
			paramNames[i] = p.Name
		}

		m.Tools = append(m.Tools, toolSummary{
			Name:        t.Name,
			Category:    t.Category,
			Description: t.Description,
			RequiresUI:  t.RequiresUI,
			Params:      paramNames,
		})
	}

	for _, r := range resourceReg.All() {
		m.Resources = append(m.Resources, resourceSummary{URI: r.URI, Name: r.Name, Description: r.Description})
	}

	data, err := json.Marshal(m)
	if err != nil {
		return []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
	}

	return data
}
