package models

// categories maps each expense category to its allowed subcategories.
var categories = map[string][]string{
	"Transporte":  {"Gasolina", "Pedágio", "Estacionamento", "Uber/Taxi", "Ônibus/Metrô"},
	"Alimentação": {"Comida", "Bebida", "Mercado"},
	"Estadia":     {"Acomodação", "Taxas"},
	"Ingressos":   {"Show/Evento", "Passeio", "Museu"},
	"Diversos":    {"Outros"},
}

// categoryOrder is the display order of categories.
var categoryOrder = []string{"Transporte", "Alimentação", "Estadia", "Ingressos", "Diversos"}

// Categories returns the category names in display order.
func Categories() []string {
	return append([]string(nil), categoryOrder...)
}

// Subcategories returns the allowed subcategories of category, or nil if the
// category is unknown.
func Subcategories(category string) []string {
	subs, ok := categories[category]
	if !ok {
		return nil
	}
	return append([]string(nil), subs...)
}

// IsCategory reports whether category is known.
func IsCategory(category string) bool {
	_, ok := categories[category]
	return ok
}

// IsSubcategory reports whether sub belongs to category.
func IsSubcategory(category, sub string) bool {
	for _, s := range categories[category] {
		if s == sub {
			return true
		}
	}
	return false
}
