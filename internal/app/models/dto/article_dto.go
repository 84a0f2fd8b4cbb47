package dto

// CreateArticleInput carries the normalized fields of an article creation
// request. The HTTP layer accepts both the legacy French field names and
// their English aliases; NormalizeArticleForm reduces them to this canonical
// shape before the service sees them.
type CreateArticleInput struct {
	Title       string
	Description string
	Category    string
	Condition   string
	Location    string
	Type        string // action intent: revendre, echanger, donner
	Status      string // explicit status, used when Type is absent
	Price       string // raw form value, parsed by the service
	ExchangeFor string
}

// articleFieldAliases maps every accepted form field name to its canonical
// name. The contract is exhaustive: a field not listed here is ignored.
var articleFieldAliases = map[string]string{
	"titre":          "title",
	"title":          "title",
	"description":    "description",
	"categorie":      "category",
	"category":       "category",
	"etat":           "condition",
	"condition":      "condition",
	"localisation":   "location",
	"location":       "location",
	"type":           "type",
	"statut":         "status",
	"status":         "status",
	"prix":           "price",
	"price":          "price",
	"souhaitEchange": "exchangeFor",
	"exchangeFor":    "exchangeFor",
}

// NormalizeArticleForm collapses a raw form value map into canonical article
// fields. When both an alias and its canonical name are present, the French
// (legacy) spelling wins, matching the behavior the frontend relies on.
func NormalizeArticleForm(form map[string][]string) CreateArticleInput {
	canonical := make(map[string]string)
	for field, values := range form {
		name, ok := articleFieldAliases[field]
		if !ok || len(values) == 0 || values[0] == "" {
			continue
		}
		if _, taken := canonical[name]; taken && !isLegacyAlias(field) {
			continue
		}
		canonical[name] = values[0]
	}

	return CreateArticleInput{
		Title:       canonical["title"],
		Description: canonical["description"],
		Category:    canonical["category"],
		Condition:   canonical["condition"],
		Location:    canonical["location"],
		Type:        canonical["type"],
		Status:      canonical["status"],
		Price:       canonical["price"],
		ExchangeFor: canonical["exchangeFor"],
	}
}

// isLegacyAlias reports whether the form field uses the legacy French naming
func isLegacyAlias(field string) bool {
	switch field {
	case "titre", "categorie", "etat", "localisation", "prix", "souhaitEchange", "statut":
		return true
	}
	return false
}

// UpdateArticleRequest represents a partial article update; only provided
// fields are merged.
type UpdateArticleRequest struct {
	Title       *string  `json:"titre,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"prix,omitempty"`
	Status      *string  `json:"statut,omitempty"`
	Location    *string  `json:"localisation,omitempty"`
}
