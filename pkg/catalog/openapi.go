package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-enhancers/pkg/combobox"
)

const (
	// EnumNamesExtension carries display labels for enum values, index aligned.
	EnumNamesExtension = "x-enumNames"
	// PlaceholderExtension sets the catalog placeholder.
	PlaceholderExtension = "x-placeholder"
)

// FromOpenAPI builds one catalog per string enum property found in request
// body schemas. Catalog ids take the form "<operationId>.<property>"; the
// property name becomes the control name and its title the label.
func FromOpenAPI(ctx context.Context, data []byte) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("catalog: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: load openapi document: %w", err)
	}

	store := NewStore()
	if spec.Paths == nil {
		return store, nil
	}

	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, method := range []string{"POST", "PUT", "PATCH"} {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			if err := collectEnums(store, method, path, op); err != nil {
				return nil, err
			}
		}
	}
	return store, nil
}

func collectEnums(store *Store, method, path string, op *openapi3.Operation) error {
	schema := requestSchema(op.RequestBody)
	if schema == nil {
		return nil
	}
	opID := op.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || len(ref.Value.Enum) == 0 {
			continue
		}
		property := ref.Value
		c := Catalog{
			ID:          opID + "." + name,
			Name:        name,
			Label:       property.Title,
			Placeholder: stringExtension(property.Extensions, PlaceholderExtension),
			Options:     enumOptions(property),
			Source:      method + " " + path,
		}
		if property.Default != nil {
			c.Selected = fmt.Sprint(property.Default)
		}
		if err := store.Add(c); err != nil {
			return err
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := body.Value.Content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func enumOptions(schema *openapi3.Schema) []combobox.Option {
	labels := enumNames(schema.Extensions[EnumNamesExtension])
	options := make([]combobox.Option, 0, len(schema.Enum))
	for idx, raw := range schema.Enum {
		if raw == nil {
			continue
		}
		value := fmt.Sprint(raw)
		label := value
		if idx < len(labels) && labels[idx] != "" {
			label = labels[idx]
		}
		options = append(options, combobox.Option{Value: value, Label: label})
	}
	return options
}

func enumNames(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, len(items))
	for idx, item := range items {
		if s, ok := item.(string); ok {
			out[idx] = s
		}
	}
	return out
}

func stringExtension(extensions map[string]any, key string) string {
	value, _ := extensions[key].(string)
	return value
}
