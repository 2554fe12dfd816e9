package domain

import "strings"

// productColumns is the projection whitelist for direct product columns.
var productColumns = map[string]bool{
	"id":                  true,
	"name":                true,
	"slug":                true,
	"price":               true,
	"price_with_discount": true,
	"stock":               true,
	"description":         true,
	"enabled":             true,
	"created_at":          true,
	"updated_at":          true,
}

// Projection is the validated output shape of a search request. A nil
// Columns slice means every direct column.
type Projection struct {
	Columns        []string
	WithCategories bool
	WithImages     bool
	WithOptions    bool
}

// DefaultProjection returns all direct columns plus every association.
func DefaultProjection() Projection {
	return Projection{WithCategories: true, WithImages: true, WithOptions: true}
}

// ParseProjection parses the comma-separated fields parameter. Unknown field
// names are silently dropped. The pseudo-fields category/categories, images
// and options switch on eager loading of the respective association instead
// of selecting a column. An empty or fully-unknown list falls back to the
// default projection.
func ParseProjection(fields string) Projection {
	fields = strings.TrimSpace(fields)
	if fields == "" {
		return DefaultProjection()
	}

	var p Projection
	hasID := false
	recognized := false
	for _, f := range strings.Split(fields, ",") {
		f = strings.TrimSpace(f)
		switch {
		case f == "category" || f == "categories":
			p.WithCategories = true
			recognized = true
		case f == "images":
			p.WithImages = true
			recognized = true
		case f == "options":
			p.WithOptions = true
			recognized = true
		case productColumns[f]:
			if f == "id" {
				hasID = true
			}
			p.Columns = append(p.Columns, f)
			recognized = true
		}
	}
	if !recognized {
		return DefaultProjection()
	}
	// Associations and response mapping always need the primary key.
	if len(p.Columns) > 0 && !hasID {
		p.Columns = append([]string{"id"}, p.Columns...)
	}
	return p
}
