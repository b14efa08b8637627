package domain

// Category is one of the four fixed query classes used for routing.
type Category string

const (
	CategoryProducts  Category = "products"
	CategoryReturns   Category = "returns"
	CategoryGeneral   Category = "general"
	CategoryUnhandled Category = "unhandled"
)

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{CategoryProducts, CategoryReturns, CategoryGeneral, CategoryUnhandled}
}

// CategoryInfo describes one category for API consumers.
type CategoryInfo struct {
	Name        Category `json:"name"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// Catalog returns the category descriptions served by the transports.
func Catalog() []CategoryInfo {
	return []CategoryInfo{
		{
			Name:        CategoryProducts,
			Description: "Questions about product specifications, prices, features, and availability",
			Examples: []string{
				"What is the price of SmartWatch Pro X?",
				"Tell me about gaming laptops",
				"What features do the wireless earbuds have?",
			},
		},
		{
			Name:        CategoryReturns,
			Description: "Questions about return policy, refunds, and exchanges",
			Examples: []string{
				"What is your return policy?",
				"How do I return a product?",
				"Can I get a refund?",
			},
		},
		{
			Name:        CategoryGeneral,
			Description: "General inquiries about warranty, support, shipping, and company info",
			Examples: []string{
				"What are your customer support hours?",
				"How long is the warranty?",
				"How can I contact support?",
			},
		},
		{
			Name:        CategoryUnhandled,
			Description: "Queries that are inappropriate, unclear, or outside the scope of customer support",
			Examples:    []string{},
		},
	}
}

// Known reports whether c is one of the four category labels.
func (c Category) Known() bool {
	switch c {
	case CategoryProducts, CategoryReturns, CategoryGeneral, CategoryUnhandled:
		return true
	}
	return false
}

// Answerable reports whether the category is eligible for the RAG branch.
// Only "unhandled" is excluded; the confidence gate is applied separately.
func (c Category) Answerable() bool {
	return c.Known() && c != CategoryUnhandled
}
