package apidoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/router"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildDoc(t *testing.T) *openapi3.T {
	t.Helper()
	doc, err := Build(router.APIRoutes())
	require.NoError(t, err)
	return doc
}

// 测试内容：验证路由表中的每个接口都出现在文档中，路径参数转换为 {name} 形式，且文档通过校验。
func TestBuild_CoversRouteTable(t *testing.T) {
	routes := router.APIRoutes()
	doc := buildDoc(t)
	require.NoError(t, doc.Validate(context.Background()))

	count := 0
	for _, item := range doc.Paths.Map() {
		count += len(item.Operations())
	}
	assert.Equal(t, len(routes), count)

	person := doc.Paths.Value("/person")
	require.NotNil(t, person)
	assert.NotNil(t, person.Get)
	assert.NotNil(t, person.Post)
	assert.NotNil(t, person.Put)
	assert.NotNil(t, person.Delete)
	assert.NotNil(t, person.Post.Responses.Value("201"))

	face := doc.Paths.Value("/person/{id}/{assetId}/faceasset").Get
	require.Len(t, face.Parameters, 2)
	for _, p := range face.Parameters {
		assert.Equal(t, openapi3.ParameterInPath, p.Value.In)
		assert.True(t, p.Value.Required)
		assert.Equal(t, "uuid", p.Value.Schema.Value.Format)
	}

	list := doc.Paths.Value("/person").Get
	require.Len(t, list.Parameters, 2)
	assert.Equal(t, openapi3.ParameterInQuery, list.Parameters[0].Value.In)
	assert.False(t, list.Parameters[0].Value.Required)
}

// 测试内容：验证访问级别与安全声明、二进制响应和错误响应。
func TestBuild_AccessAndResponses(t *testing.T) {
	doc := buildDoc(t)

	ping := doc.Paths.Value("/ping").Get
	assert.Equal(t, "public", ping.Extensions["x-access"])
	assert.Nil(t, ping.Security)
	assert.Nil(t, ping.Responses.Value("401"))

	stats := doc.Paths.Value("/server-info/stats").Get
	assert.Equal(t, "admin", stats.Extensions["x-access"])
	require.NotNil(t, stats.Security)
	assert.NotEmpty(t, *stats.Security)
	assert.NotNil(t, stats.Responses.Value("403"))

	thumb := doc.Paths.Value("/person/{id}/thumbnail").Get
	ok := thumb.Responses.Value("200")
	require.NotNil(t, ok)
	media := ok.Value.Content.Get("image/jpeg")
	require.NotNil(t, media)
	assert.Equal(t, "binary", media.Schema.Value.Format)
	bad := thumb.Responses.Value("400")
	require.NotNil(t, bad)
	assert.Equal(t, "#/components/schemas/ErrorResponse", bad.Value.Content.Get("application/json").Schema.Ref)
}

// 测试内容：验证 schema 反映 binding 标签中的约束与指针字段的 nullable。
func TestBuild_SchemaConstraints(t *testing.T) {
	doc := buildDoc(t)
	schemas := doc.Components.Schemas

	merge := schemas["MergePersonRequest"]
	require.NotNil(t, merge)
	assert.Equal(t, []string{"ids"}, merge.Value.Required)
	ids := merge.Value.Properties["ids"].Value
	assert.True(t, ids.Type.Is(openapi3.TypeArray))
	assert.EqualValues(t, 1, ids.MinItems)
	require.NotNil(t, ids.MaxItems)
	assert.EqualValues(t, 500, *ids.MaxItems)
	assert.Equal(t, "uuid", ids.Items.Value.Format)

	reassign := schemas["AssetFaceUpdateRequest"]
	require.NotNil(t, reassign)
	item := reassign.Value.Properties["data"].Value.Items.Value
	assert.ElementsMatch(t, []string{"personId", "assetId"}, item.Required)
	assert.Equal(t, "uuid", item.Properties["personId"].Value.Format)

	personResp := schemas["PersonResponse"]
	require.NotNil(t, personResp)
	assert.True(t, personResp.Value.Properties["birthDate"].Value.Nullable)
	assert.False(t, personResp.Value.Properties["name"].Value.Nullable)

	update := schemas["PersonUpdateRequest"]
	require.NotNil(t, update)
	assert.Equal(t, "date", update.Value.Properties["birthDate"].Value.Format)
	require.NotNil(t, update.Value.Properties["name"].Value.MaxLength)
	assert.EqualValues(t, 255, *update.Value.Properties["name"].Value.MaxLength)
	assert.Empty(t, update.Value.Required)

	asset := schemas["AssetResponse"]
	require.NotNil(t, asset)
	assert.Equal(t, "date-time", asset.Value.Properties["fileCreatedAt"].Value.Format)
	assert.Contains(t, asset.Value.Properties["people"].Value.Items.Value.Properties, "name")

	features := schemas["ServerFeaturesResponse"]
	require.NotNil(t, features)
	assert.Len(t, features.Value.Properties, 9)

	bulk := doc.Paths.Value("/person").Put.Responses.Value("200").Value.Content.Get("application/json").Schema.Value
	assert.True(t, bulk.Type.Is(openapi3.TypeArray))
	assert.Equal(t, "#/components/schemas/BulkIDResponse", bulk.Items.Ref)
}

// 测试内容：验证导出的 YAML 可以被重新解析、再次通过校验并写入嵌套目录。
func TestWriteFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs", "api.yaml")
	require.NoError(t, WriteFile(out, router.APIRoutes()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, "3.0.3", parsed["openapi"])
	info := parsed["info"].(map[string]any)
	assert.Equal(t, consts.ApplicationVersion, info["version"])
	assert.Contains(t, parsed["paths"], "/person/{id}/merge")

	loaded, err := openapi3.NewLoader().LoadFromData(data)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate(context.Background()))
	assert.NotNil(t, loaded.Paths.Value("/person/{id}/merge").Post)
}
