package apidoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"

	"github.com/jesb1n/immich/internal/consts"
	"github.com/jesb1n/immich/internal/router"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

const (
	bearerScheme      = "bearer"
	errorResponseName = "ErrorResponse"
	componentPrefix   = "#/components/schemas/"
)

var pathParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

type builder struct {
	doc *openapi3.T
}

// Build 根据路由表生成 OpenAPI 文档，具名结构体放入 components
func Build(routes []router.Route) (*openapi3.T, error) {
	errorSchema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("fields", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))
	errorSchema.Required = []string{"error"}

	b := &builder{doc: &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: consts.ApplicationName, Version: consts.ApplicationVersion},
		Servers: openapi3.Servers{&openapi3.Server{URL: "/api"}},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{errorResponseName: openapi3.NewSchemaRef("", errorSchema)},
			SecuritySchemes: openapi3.SecuritySchemes{
				bearerScheme: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}}

	for _, route := range routes {
		op, err := b.operation(route)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", route.Method, route.Path, err)
		}
		path := pathParam.ReplaceAllString(route.Path, "{$1}")
		item := b.doc.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			b.doc.Paths.Set(path, item)
		}
		item.SetOperation(route.Method, op)
	}
	return b.doc, nil
}

// component 生成或复用 components 中的 schema，返回带 $ref 的引用
func (b *builder) component(t reflect.Type) (*openapi3.SchemaRef, error) {
	name := t.Name()
	existing, ok := b.doc.Components.Schemas[name]
	if !ok {
		ref, err := newSchemaRef(t)
		if err != nil {
			return nil, err
		}
		existing = openapi3.NewSchemaRef("", ref.Value)
		b.doc.Components.Schemas[name] = existing
	}
	return openapi3.NewSchemaRef(componentPrefix+name, existing.Value), nil
}

func (b *builder) schemaFor(v any) (*openapi3.SchemaRef, error) {
	t := reflect.TypeOf(v)
	switch {
	case t.Kind() == reflect.Struct && t.Name() != "":
		return b.component(t)
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Struct:
		items, err := b.component(t.Elem())
		if err != nil {
			return nil, err
		}
		arr := openapi3.NewArraySchema()
		arr.Items = items
		return openapi3.NewSchemaRef("", arr), nil
	default:
		return newSchemaRef(t)
	}
}

func (b *builder) operation(route router.Route) (*openapi3.Operation, error) {
	op := &openapi3.Operation{
		Tags:       []string{route.Tag},
		Summary:    route.Summary,
		Extensions: map[string]any{"x-access": string(route.Access)},
		Responses:  openapi3.NewResponsesWithCapacity(4),
	}
	if route.Access != router.AccessPublic {
		op.Security = openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate(bearerScheme))
	}

	pathParams, err := parameters(route.Params, "uri", openapi3.ParameterInPath)
	if err != nil {
		return nil, err
	}
	queryParams, err := parameters(route.Query, "form", openapi3.ParameterInQuery)
	if err != nil {
		return nil, err
	}
	op.Parameters = append(pathParams, queryParams...)

	if route.Body != nil {
		ref, err := b.schemaFor(route.Body)
		if err != nil {
			return nil, err
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref),
		}
	}

	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	ok := openapi3.NewResponse().WithDescription(http.StatusText(status))
	switch {
	case route.Produces != "":
		ok.Content = openapi3.NewContentWithSchema(openapi3.NewStringSchema().WithFormat("binary"), []string{route.Produces})
	case route.Response != nil:
		ref, err := b.schemaFor(route.Response)
		if err != nil {
			return nil, err
		}
		ok.Content = openapi3.NewContentWithJSONSchemaRef(ref)
	}
	op.Responses.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: ok})

	errorRef := openapi3.NewSchemaRef(componentPrefix+errorResponseName, b.doc.Components.Schemas[errorResponseName].Value)
	errorResponse := func(code int) {
		resp := openapi3.NewResponse().
			WithDescription(http.StatusText(code)).
			WithContent(openapi3.NewContentWithJSONSchemaRef(errorRef))
		op.Responses.Set(strconv.Itoa(code), &openapi3.ResponseRef{Value: resp})
	}
	if len(op.Parameters) > 0 || op.RequestBody != nil {
		errorResponse(http.StatusBadRequest)
	}
	if route.Access != router.AccessPublic {
		errorResponse(http.StatusUnauthorized)
		errorResponse(http.StatusForbidden)
	}
	return op, nil
}

// parameters 把 uri/form 标签的请求结构体展开为路径或查询参数
func parameters(v any, tagKey, in string) (openapi3.Parameters, error) {
	if v == nil {
		return nil, nil
	}
	t := reflect.TypeOf(v)
	var params openapi3.Parameters
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := tagName(sf, tagKey)
		if name == "" {
			continue
		}
		schema, err := newSchemaRef(sf.Type)
		if err != nil {
			return nil, err
		}
		binding := sf.Tag.Get("binding")
		applyBinding(schema.Value, binding)

		var p *openapi3.Parameter
		if in == openapi3.ParameterInPath {
			p = openapi3.NewPathParameter(name)
		} else {
			p = openapi3.NewQueryParameter(name).WithRequired(hasRule(ownRules(binding), "required"))
		}
		p.Schema = schema
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params, nil
}

// Marshal 输出 YAML，map 的键按字典序排列
func Marshal(doc *openapi3.T) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode api document: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("encode api document: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encode api document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode api document: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile 生成文档并写入 path，父目录不存在时创建
func WriteFile(path string, routes []router.Route) error {
	doc, err := Build(routes)
	if err != nil {
		return err
	}
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write api document: %w", err)
	}
	return nil
}
