package project

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/philipparndt/gortho/pkg/analysis"
)

// decodeVariant creates the variant for kind and lets decode fill it through
// a pointer to its concrete type
func decodeVariant(kind analysis.Kind, decode func(target any) error) (analysis.Variant, error) {
	zero, err := analysis.NewVariant(kind)
	if err != nil {
		return nil, err
	}
	target := reflect.New(reflect.TypeOf(zero))
	if err := decode(target.Interface()); err != nil {
		return nil, fmt.Errorf("failed to decode %s parameters: %w", kind, err)
	}
	return target.Elem().Interface().(analysis.Variant), nil
}

// yamlFields returns the mapping keys a struct type decodes from
func yamlFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(t.Field(i).Name)
		}
		fields[name] = true
	}
	return fields
}

func boolPtr(b bool) *bool {
	return &b
}
