package port

// AttributeSource supplies the attribute names worth extracting for a
// product category when a row does not name its own.
type AttributeSource interface {
	AttributesFor(category, subcategory string) []string
}
