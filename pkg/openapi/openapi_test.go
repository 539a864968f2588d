package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/cmdreview/pkg/openapi"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

func noop(http.ResponseWriter, *http.Request) {}

func TestAddGroups(t *testing.T) {
	spec := openapi.NewSpec("Review", "1.0.0")
	spec.AddGroups(
		routes.Group{
			Children: []routes.Group{
				{
					Prefix: "/auth",
					Routes: []routes.Route{
						{Method: "POST", Pattern: "/register", Handler: noop, Summary: "Register", Public: true},
					},
				},
			},
		},
		routes.Group{
			Prefix: "/corpus",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/commands/{id}/contexts", Handler: noop, Summary: "Contexts"},
			},
			Children: []routes.Group{
				{Routes: []routes.Route{{Method: "GET", Pattern: "/commands", Handler: noop}}},
			},
		},
		routes.Group{
			Prefix: "/assets",
			Routes: []routes.Route{{Method: "GET", Pattern: "/{key...}", Handler: noop}},
		},
	)

	register := spec.Paths["/auth/register"]
	require.NotNil(t, register)
	require.NotNil(t, register.Post)
	assert.Equal(t, []string{"auth"}, register.Post.Tags)
	require.NotNil(t, register.Post.Security)
	assert.Empty(t, *register.Post.Security)
	assert.Contains(t, register.Post.Responses, http.StatusCreated)
	assert.NotContains(t, register.Post.Responses, http.StatusUnauthorized)

	contexts := spec.Paths["/corpus/commands/{id}/contexts"]
	require.NotNil(t, contexts)
	require.Len(t, contexts.Get.Parameters, 1)
	assert.Equal(t, "id", contexts.Get.Parameters[0].Name)
	assert.Equal(t, "integer", contexts.Get.Parameters[0].Schema.Type)
	assert.Nil(t, contexts.Get.Security)
	assert.Contains(t, contexts.Get.Responses, http.StatusNotFound)

	list := spec.Paths["/corpus/commands"]
	require.NotNil(t, list)
	assert.Equal(t, []string{"corpus"}, list.Get.Tags)

	asset := spec.Paths["/assets/{key}"]
	require.NotNil(t, asset)
	assert.Equal(t, "string", asset.Get.Parameters[0].Schema.Type)
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Review", "2.0.0")
	spec.SetDescription("command review")
	spec.AddServer("/api")

	data, err := openapi.MarshalJSON(spec)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.1.0", doc["openapi"])
	assert.Equal(t, []any{map[string]any{"bearerAuth": []any{}}}, doc["security"])

	components := doc["components"].(map[string]any)
	assert.Contains(t, components["securitySchemes"], "bearerAuth")
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Ops Review")

	var cfg openapi.Config
	require.NoError(t, cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}))
	assert.Equal(t, "Ops Review", cfg.Title)
	assert.NotEmpty(t, cfg.Description)
}
