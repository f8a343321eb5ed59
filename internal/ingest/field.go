package ingest

// field is an ordered fallback chain of locations for one logical value.
// The first location holding a usable value wins.
type field struct {
	name  string
	paths []string
}

func newField(name string, paths ...string) field {
	return field{name: name, paths: paths}
}

// scalar returns the first non-blank leaf value along the chain.
func (f field) scalar(d Document) (any, bool) {
	for _, p := range f.paths {
		if v, ok := d.Lookup(p); ok && isScalar(v) {
			return v, true
		}
	}

	return nil, false
}

func (f field) str(d Document) (string, bool) {
	v, ok := f.scalar(d)
	if !ok {
		return "", false
	}

	s := scalarString(v)

	return s, s != ""
}

// array returns the first location that holds an array. Present values of
// any other type are skipped.
func (f field) array(d Document) ([]any, bool) {
	for _, p := range f.paths {
		if v, ok := d.Lookup(p); ok {
			if arr, ok := v.([]any); ok {
				return arr, true
			}
		}
	}

	return nil, false
}

// Extraction metadata hangs off a different root depending on the shape.
const (
	flatMetadataRoot    = "extractedData.llmData"
	groupedMetadataRoot = "llmData"
)

var (
	invoiceNoField = newField("invoiceNo", "invoiceNo", "invoice_no")
	recordIDField  = newField("id", "id", "_id")
	statusField    = newField("status", "status")
	paymentsField  = newField("payments", "payments")

	vendorNameField = newField("vendorName",
		"vendor.name", "vendor.vendorName", "vendor.vendor_name",
		"vendorName", "vendor_name",
	)
	vendorCategoryField = newField("vendorCategory",
		"vendor.category", "vendor.vendorCategory", "vendor.vendor_category",
	)
	groupNameField     = newField("name", "name")
	groupCategoryField = newField("category", "category", "vendorCategory", "vendor_category")

	itemDescriptionField = newField("description", "description.value", "description", "name")
	itemQuantityField    = newField("quantity", "quantity.value", "quantity", "qty")
	itemPriceField       = newField("price", "unitPrice.value", "price", "unitPrice", "unit_price")

	paymentAmountField = newField("amount", "amount.value", "amount")
	paymentDateField   = newField("date", "date.value", "date")
)

// invoiceFields holds the chains whose metadata fallbacks depend on the
// record shape.
type invoiceFields struct {
	date      field
	amount    field
	lineItems field
	dueDate   field
}

func fieldsFor(shape Shape) invoiceFields {
	if shape == ShapeVendorGrouped {
		root := groupedMetadataRoot

		return invoiceFields{
			date:      newField("date", "date"),
			amount:    newField("amount", "amount", root+".summary.value.invoiceTotal.value"),
			lineItems: newField("lineItems", "lineItems", "line_items", root+".lineItems.value.items.value", "items"),
			dueDate:   newField("dueDate", root+".payment.value.dueDate.value"),
		}
	}

	root := flatMetadataRoot

	return invoiceFields{
		date:      newField("date", "date", root+".invoice.value.invoiceDate.value"),
		amount:    newField("amount", "amount", root+".summary.value.invoiceTotal.value"),
		lineItems: newField("lineItems", "lineItems", "line_items", root+".lineItems.value.items.value", "items"),
		dueDate:   newField("dueDate", root+".payment.value.dueDate.value"),
	}
}
