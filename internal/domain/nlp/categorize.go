package nlp

import (
	"strings"

	"restock/internal/domain/entity"
)

// categoryRule pairs a keyword set with the category it implies.
type categoryRule struct {
	category entity.Category
	keywords []string
}

// categoryRules is evaluated in order; the first rule with a matching keyword
// wins. Names matching no rule fall back to CategoryOther.
var categoryRules = []categoryRule{
	{
		category: entity.CategoryGroceries,
		keywords: []string{
			"milk", "egg", "bread", "coffee", "tea", "cheese", "butter",
			"yogurt", "rice", "pasta", "cereal", "flour", "sugar", "salt",
			"apple", "banana", "orange", "tomato", "onion", "potato",
			"chicken", "beef", "fish", "juice", "fruit", "vegetable",
		},
	},
	{
		category: entity.CategoryHardware,
		keywords: []string{
			"nail", "screw", "hammer", "drill", "saw", "wrench", "bolt",
			"tape", "glue", "paint", "bulb", "battery", "ladder", "hinge",
		},
	},
	{
		category: entity.CategoryPharmacy,
		keywords: []string{
			"aspirin", "ibuprofen", "vitamin", "bandage", "medicine",
			"shampoo", "soap", "toothpaste", "sunscreen", "tissue", "pill",
		},
	},
	{
		category: entity.CategoryElectronics,
		keywords: []string{
			"cable", "charger", "phone", "laptop", "headphone", "mouse",
			"keyboard", "monitor", "usb", "adapter", "speaker",
		},
	},
	{
		category: entity.CategoryBooks,
		keywords: []string{
			"book", "novel", "magazine", "journal", "comic", "atlas",
		},
	},
}

// Categorize maps a normalized item name to exactly one category.
// Deterministic and idempotent: the same input always yields the same output.
func Categorize(name string) entity.Category {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}

	return entity.CategoryOther
}
