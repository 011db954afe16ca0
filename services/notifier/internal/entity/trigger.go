package entity

import (
	"fmt"
	"strings"
)

// TriggerEvent reports one document created in a watched collection.
type TriggerEvent struct {
	Collection string
	DocumentID string
	Fields     map[string]interface{}
}

// String returns the named field as text. Missing and null fields yield "".
func (e TriggerEvent) String(key string) string {
	v, ok := e.Fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// StringOr returns the named field, or fallback when it is blank.
func (e TriggerEvent) StringOr(key, fallback string) string {
	if s := e.String(key); strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
