// Package openapi builds an OpenAPI 3.1 document from the declared route groups.
package openapi

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/JaimeStill/cmdreview/pkg/routes"
)

// Spec represents an OpenAPI 3.1 specification document.
type Spec struct {
	OpenAPI    string                `json:"openapi"`
	Info       *Info                 `json:"info"`
	Servers    []*Server             `json:"servers,omitempty"`
	Security   []SecurityRequirement `json:"security,omitempty"`
	Paths      map[string]*PathItem  `json:"paths"`
	Components *Components           `json:"components,omitempty"`
}

var pathParam = regexp.MustCompile(`\{([a-z_]+)(\.\.\.)?\}`)

// NewSpec creates a Spec with the given title, version, and default components.
// Operations require a bearer token unless marked public.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:   title,
			Version: version,
		},
		Security:   []SecurityRequirement{{BearerScheme: {}}},
		Components: NewComponents(),
		Paths:      make(map[string]*PathItem),
	}
}

// AddServer appends a server URL to the spec.
func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// SetDescription sets the API description in the info object.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddGroups adds an operation for every route in groups. Each operation is
// tagged with the first path segment of its top-level group.
func (s *Spec) AddGroups(groups ...routes.Group) {
	for _, g := range groups {
		s.addGroup("", "", g)
	}
}

func (s *Spec) addGroup(parent, tag string, g routes.Group) {
	prefix := parent + g.Prefix
	if tag == "" {
		tag = strings.TrimPrefix(g.Prefix, "/")
	}

	for _, r := range g.Routes {
		path, params := convertPath(prefix + r.Pattern)

		op := &Operation{
			Summary:    r.Summary,
			Parameters: params,
			Responses:  responses(r, len(params) > 0),
		}
		if tag != "" {
			op.Tags = []string{tag}
		}
		if r.Public {
			op.Security = &[]SecurityRequirement{}
		}

		item, ok := s.Paths[path]
		if !ok {
			item = &PathItem{}
			s.Paths[path] = item
		}
		switch r.Method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodDelete:
			item.Delete = op
		}
	}

	for _, child := range g.Children {
		s.addGroup(prefix, tag, child)
	}
}

// convertPath rewrites ServeMux wildcards ({id}, {key...}) as OpenAPI
// path templates and returns a parameter for each. Parameters named id
// are integers.
func convertPath(pattern string) (string, []*Parameter) {
	if pattern == "" {
		pattern = "/"
	}

	var params []*Parameter
	for _, m := range pathParam.FindAllStringSubmatch(pattern, -1) {
		typ := "string"
		if m[1] == "id" {
			typ = "integer"
		}
		params = append(params, PathParam(m[1], typ, ""))
	}

	return pathParam.ReplaceAllString(pattern, "{$1}"), params
}

func responses(r routes.Route, hasParams bool) map[int]*Response {
	ok := http.StatusOK
	if r.Method == http.MethodPost && strings.HasSuffix(r.Pattern, "/register") {
		ok = http.StatusCreated
	}

	out := map[int]*Response{
		ok:                             {Description: http.StatusText(ok)},
		http.StatusBadRequest:          ResponseRef("BadRequest"),
		http.StatusInternalServerError: {Description: http.StatusText(http.StatusInternalServerError)},
	}
	if !r.Public {
		out[http.StatusUnauthorized] = ResponseRef("Unauthorized")
		out[http.StatusForbidden] = ResponseRef("Forbidden")
	}
	if hasParams {
		out[http.StatusNotFound] = ResponseRef("NotFound")
	}
	if r.Method == http.MethodPost {
		out[http.StatusConflict] = ResponseRef("Conflict")
	}
	return out
}

// MarshalJSON serializes the spec to indented JSON bytes.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that serves pre-serialized JSON spec bytes.
func ServeSpec(specBytes []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(specBytes)
	}
}
