package apidoc

import (
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// newSchemaRef 由 Go 类型生成内联 schema，结构体属性按 binding 标签补充约束
func newSchemaRef(t reflect.Type) (*openapi3.SchemaRef, error) {
	return openapi3gen.NewSchemaRefForValue(
		reflect.Zero(t).Interface(),
		openapi3.Schemas{},
		openapi3gen.SchemaCustomizer(bindingCustomizer),
	)
}

// bindingCustomizer 在结构体 schema 上应用各字段的 binding 规则，指针字段标记为 nullable
func bindingCustomizer(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
	if t.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := tagName(sf, "json")
		if name == "" {
			continue
		}
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		if sf.Type.Kind() == reflect.Pointer {
			prop.Value.Nullable = true
		}
		binding := sf.Tag.Get("binding")
		if hasRule(ownRules(binding), "required") && !slices.Contains(schema.Required, name) {
			schema.Required = append(schema.Required, name)
		}
		applyBinding(prop.Value, binding)
	}
	return nil
}

// tagName 字段在 json/uri/form 中的名字，不导出或被忽略时返回空串
func tagName(sf reflect.StructField, key string) string {
	if !sf.IsExported() {
		return ""
	}
	name := strings.Split(sf.Tag.Get(key), ",")[0]
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

// ownRules dive 之前的规则作用于字段本身，之后的作用于元素
func ownRules(binding string) []string {
	rules := strings.Split(binding, ",")
	if i := slices.Index(rules, "dive"); i >= 0 {
		return rules[:i]
	}
	return rules
}

func elemRules(binding string) []string {
	rules := strings.Split(binding, ",")
	if i := slices.Index(rules, "dive"); i >= 0 {
		return rules[i+1:]
	}
	return nil
}

func hasRule(rules []string, name string) bool {
	return slices.Contains(rules, name)
}

func applyBinding(s *openapi3.Schema, binding string) {
	if binding == "" {
		return
	}
	applyRules(s, ownRules(binding))
	if s.Items != nil && s.Items.Ref == "" && s.Items.Value != nil {
		applyRules(s.Items.Value, elemRules(binding))
	}
}

func applyRules(s *openapi3.Schema, rules []string) {
	for _, rule := range rules {
		name, arg, _ := strings.Cut(rule, "=")
		switch name {
		case "uuid4":
			s.Format = "uuid"
		case "datetime":
			s.Format = "date"
		case "min", "max":
			n, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				continue
			}
			switch {
			case s.Type.Is(openapi3.TypeArray) && name == "min":
				s.MinItems = n
			case s.Type.Is(openapi3.TypeArray) && name == "max":
				s.MaxItems = &n
			case s.Type.Is(openapi3.TypeString) && name == "max":
				s.MaxLength = &n
			}
		}
	}
}
