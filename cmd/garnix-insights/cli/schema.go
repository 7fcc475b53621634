// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Schema is a JSON Schema representation covering the subset needed
// for MCP tool input descriptions.
type Schema struct {
	// Type is the JSON Schema type: "object", "string", "boolean",
	// "integer", or "array".
	Type string `json:"type"`

	// Description is populated from the desc struct tag.
	Description string `json:"description,omitempty"`

	// Properties maps property names to their schemas. Only set when
	// Type is "object".
	Properties map[string]*Schema `json:"properties,omitempty"`

	// Required lists property names that must be provided. Only set
	// when Type is "object".
	Required []string `json:"required,omitempty"`

	// Default is the parsed value of the default struct tag, typed so
	// that it marshals as the matching JSON type.
	Default any `json:"default,omitempty"`

	// Items describes the element type for array schemas.
	Items *Schema `json:"items,omitempty"`

	// Format is an optional format hint ("duration" for time.Duration).
	Format string `json:"format,omitempty"`
}

var durationType = reflect.TypeOf(time.Duration(0))

// ParamsSchema generates a JSON Schema from a parameter struct's type
// information. Property names come from json struct tags, descriptions
// from desc tags, and defaults from default tags. Fields without a json
// tag, or tagged json:"-", are excluded.
//
// A field is marked required when it has a required:"true" tag and no
// default tag. Embedded structs are merged into the parent object.
//
// params may be a struct or a pointer to one.
func ParamsSchema(params any) (*Schema, error) {
	value := reflect.ValueOf(params)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, Internal("params must be a struct or pointer to struct, got %T", params)
	}
	return buildObjectSchema(value.Type())
}

func buildObjectSchema(structType reflect.Type) (*Schema, error) {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	for i := range structType.NumField() {
		field := structType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, err := buildObjectSchema(field.Type)
			if err != nil {
				return nil, Internal("embedded %s: %w", field.Name, err)
			}
			for name, property := range embedded.Properties {
				schema.Properties[name] = property
			}
			schema.Required = append(schema.Required, embedded.Required...)
			continue
		}

		if !field.IsExported() {
			continue
		}

		propertyName := jsonPropertyName(field)
		if propertyName == "" || propertyName == "-" {
			continue
		}

		property, err := fieldSchema(field)
		if err != nil {
			return nil, Internal("field %s: %w", field.Name, err)
		}
		schema.Properties[propertyName] = property

		if field.Tag.Get("required") == "true" && field.Tag.Get("default") == "" {
			schema.Required = append(schema.Required, propertyName)
		}
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}
	return schema, nil
}

// jsonPropertyName returns "" when the field has no json tag.
func jsonPropertyName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func fieldSchema(field reflect.StructField) (*Schema, error) {
	description := field.Tag.Get("desc")
	fieldType := field.Type
	if fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	var schema *Schema
	switch {
	case fieldType == durationType:
		schema = &Schema{Type: "string", Format: "duration"}
	case fieldType.Kind() == reflect.String:
		schema = &Schema{Type: "string"}
	case fieldType.Kind() == reflect.Bool:
		schema = &Schema{Type: "boolean"}
	case fieldType.Kind() == reflect.Int, fieldType.Kind() == reflect.Int64:
		schema = &Schema{Type: "integer"}
	case fieldType.Kind() == reflect.Slice && fieldType.Elem().Kind() == reflect.String:
		schema = &Schema{Type: "array", Items: &Schema{Type: "string"}}
	default:
		return nil, Internal("unsupported type %s", fieldType)
	}
	schema.Description = description

	if defaultString := field.Tag.Get("default"); defaultString != "" {
		defaultValue, err := parseDefault(fieldType, defaultString)
		if err != nil {
			return nil, Internal("default: %w", err)
		}
		schema.Default = defaultValue
	}
	return schema, nil
}

func parseDefault(fieldType reflect.Type, value string) (any, error) {
	if fieldType == durationType {
		if _, err := time.ParseDuration(value); err != nil {
			return nil, err
		}
		return value, nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Bool:
		return strconv.ParseBool(value)
	case reflect.Int, reflect.Int64:
		return strconv.ParseInt(value, 10, 64)
	case reflect.Slice:
		return strings.Split(value, ","), nil
	default:
		return nil, Internal("unsupported type %s", fieldType)
	}
}

// SchemaJSON generates the schema for params and marshals it as compact
// JSON, the form embedded in MCP tools/list results.
func SchemaJSON(params any) (json.RawMessage, error) {
	schema, err := ParamsSchema(params)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, Internal("marshal schema: %w", err)
	}
	return data, nil
}
