package nlp

import (
	"testing"

	"restock/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want entity.Category
	}{
		{"Milk", entity.CategoryGroceries},
		{"Whole Milk", entity.CategoryGroceries},
		{"Eggs", entity.CategoryGroceries},
		{"Coffee Beans", entity.CategoryGroceries},
		{"Nails", entity.CategoryHardware},
		{"Duct Tape", entity.CategoryHardware},
		{"Light Bulb", entity.CategoryHardware},
		{"Aspirin", entity.CategoryPharmacy},
		{"Toothpaste", entity.CategoryPharmacy},
		{"Usb Cable", entity.CategoryElectronics},
		{"Phone Charger", entity.CategoryElectronics},
		{"Novel", entity.CategoryBooks},
		{"Comic Book", entity.CategoryBooks},
		{"Birthday Card", entity.CategoryOther},
		{"", entity.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Categorize("MILK"), Categorize("milk"))
	assert.Equal(t, entity.CategoryGroceries, Categorize("MILK"))
}

func TestCategorize_FirstMatchingRuleWins(t *testing.T) {
	// "book" is a books keyword but "cook book stand" contains no earlier
	// rule's keyword, so the books rule applies.
	assert.Equal(t, entity.CategoryBooks, Categorize("Cook Book Stand"))

	// A groceries keyword outranks a later rule's keyword in the same name.
	assert.Equal(t, entity.CategoryGroceries, Categorize("Coffee Table Book"))
}

func TestCategorize_Deterministic(t *testing.T) {
	first := Categorize("Mystery Item")
	for range 5 {
		assert.Equal(t, first, Categorize("Mystery Item"))
	}
}
