package patterns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCategoryRules returns the built-in keyword-to-category mapping.
// Order matters: categories are tried top to bottom and the first hit wins.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Name: "food", Keywords: []string{
			"restaurant", "cafe", "zomato", "swiggy", "food", "dominos",
			"pizza", "mcdonald", "kfc", "subway",
		}},
		{Name: "transport", Keywords: []string{
			"uber", "ola", "rapido", "metro", "railway", "irctc", "fuel",
			"petrol", "diesel", "parking",
		}},
		{Name: "shopping", Keywords: []string{
			"amazon", "flipkart", "myntra", "ajio", "mall", "store", "shop",
		}},
		{Name: "bills", Keywords: []string{
			"electricity", "water", "gas", "broadband", "internet", "mobile",
			"recharge", "postpaid",
		}},
		{Name: "entertainment", Keywords: []string{
			"netflix", "prime", "hotstar", "spotify", "movie", "cinema", "theatre",
		}},
		{Name: "healthcare", Keywords: []string{
			"hospital", "pharmacy", "medical", "doctor", "clinic", "medicine",
		}},
		{Name: "education", Keywords: []string{
			"school", "college", "university", "course", "udemy", "coursera",
		}},
		{Name: "groceries", Keywords: []string{
			"supermarket", "grocery", "bigbasket", "grofers", "dmart",
			"reliance fresh",
		}},
	}
}

// LoadCategoryRules reads an ordered category rule list from a YAML file.
// The file holds a list of {name, keywords} entries; list order is preserved
// and becomes the matching order.
func LoadCategoryRules(path string) ([]CategoryRule, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read category rules file: %w", err)
	}

	var rules []CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse category rules file %s: %w", path, err)
	}

	for i, rule := range rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("category rule %d has no name", i)
		}
	}
	return rules, nil
}
