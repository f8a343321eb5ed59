package ingest

// Shape is the nesting convention of a raw record.
type Shape int

const (
	// ShapeFlat is a record describing a single invoice.
	ShapeFlat Shape = iota
	// ShapeVendorGrouped is a named vendor carrying an invoices array.
	ShapeVendorGrouped
)

func (s Shape) String() string {
	if s == ShapeVendorGrouped {
		return "vendor-grouped"
	}

	return "flat"
}

// DetectShape classifies a record once, up front: a non-blank name plus an
// invoices array makes it vendor-grouped, anything else is flat.
func DetectShape(d Document) Shape {
	if _, ok := groupNameField.str(d); !ok {
		return ShapeFlat
	}

	if v, ok := d.Lookup("invoices"); ok {
		if _, isArray := v.([]any); isArray {
			return ShapeVendorGrouped
		}
	}

	return ShapeFlat
}
