package approvalsdk

import (
	"fmt"
	"strconv"
	"strings"
)

// Items returns data as a slice when it is a JSON array, else nil.
func Items(data any) []any {
	items, _ := data.([]any)
	return items
}

// Count is the length of data when it is an array, 0 for anything else.
func Count(data any) int {
	return len(Items(data))
}

// Head returns at most n leading elements of data, never nil.
func Head(data any, n int) []any {
	items := Items(data)
	if len(items) > n {
		items = items[:n]
	}
	if items == nil {
		return []any{}
	}
	return items
}

// Records returns the object elements of a JSON array, skipping anything else.
func Records(data any) []map[string]any {
	var out []map[string]any
	for _, item := range Items(data) {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

// StringField renders rec[key] as a string. Numbers are formatted without
// exponent; missing or non-scalar values yield "".
func StringField(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Organizations extracts id and name from a /companies listing.
func Organizations(data any) []Organization {
	var out []Organization
	for _, rec := range Records(data) {
		out = append(out, Organization{
			ID:   StringField(rec, "id"),
			Name: StringField(rec, "name"),
		})
	}
	return out
}

// IsPurchaseOrderDocument reports whether a /documents record looks like a purchase order.
func IsPurchaseOrderDocument(rec map[string]any) bool {
	if StringField(rec, "type") == "PurchaseOrder" || StringField(rec, "documentType") == "PurchaseOrder" {
		return true
	}
	return strings.Contains(strings.ToLower(StringField(rec, "name")), "purchase")
}
