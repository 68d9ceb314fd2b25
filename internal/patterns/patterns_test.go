package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/finsight/internal/models"
)

func TestDetectBank(t *testing.T) {
	library := Default()

	tests := []struct {
		name  string
		texts []string
		want  models.Bank
	}{
		{"sender address", []string{"estatements@hdfcbank.net", ""}, models.BankHDFC},
		{"subject only", []string{"noreply@example.com", "Your ICICI Bank statement"}, models.BankICICI},
		{"first text wins", []string{"alerts@axisbank.com", "SBI statement"}, models.BankAxis},
		{"sms shortcode", []string{"VM-HDFCBK"}, models.BankHDFC},
		{"no bank", []string{"newsletter@shop.example", "Weekly deals"}, models.BankUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, library.DetectBank(tt.texts...))
		})
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	library := Default()

	// "food" precedes "groceries" in the rule list, so a text matching both
	// keyword sets lands in food.
	assert.Equal(t, "food", library.Categorize("bigbasket restaurant order"))

	assert.Equal(t, "transport", library.Categorize("uber ride to airport"))
	assert.Equal(t, "bills", library.Categorize("electricity recharge"))
	assert.Equal(t, models.CategoryUncategorized, library.Categorize("completely unrelated text"))
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	library := Default()
	assert.Equal(t, library.Categorize("SWIGGY"), library.Categorize("swiggy"))
}

func TestWithCategoriesReplacesRules(t *testing.T) {
	library := Default().WithCategories([]CategoryRule{
		{Name: "subscriptions", Keywords: []string{"netflix"}},
	})

	assert.Equal(t, "subscriptions", library.Categorize("netflix renewal"))
	assert.Equal(t, models.CategoryUncategorized, library.Categorize("swiggy order"),
		"replacement must drop the default rules")

	// The original library keeps its own rules.
	assert.Equal(t, "food", Default().Categorize("swiggy order"))
}

func TestDefaultCategoryOrder(t *testing.T) {
	rules := DefaultCategoryRules()
	require.NotEmpty(t, rules)
	assert.Equal(t, "food", rules[0].Name, "food must be tried before groceries")
	assert.Equal(t, "groceries", rules[len(rules)-1].Name)
}
