// Package patterns supplies the named pattern sets used to recognize amounts,
// dates, transaction directions, merchants, account suffixes, bank identities,
// statement line shapes, and spending categories.
//
// Every set is an ordered list of rules tried in sequence with strict
// first-match-wins semantics. There is no scoring or best-match ranking: the
// first rule that matches a given span decides. A Library is built once and
// never mutated afterwards; compiled regular expressions are safe for
// concurrent use, so a single Library serves the whole process.
package patterns

import (
	"regexp"
	"strings"

	"finsight/finsight/internal/models"
)

// DirectionRule binds a keyword-family pattern to the direction it indicates.
type DirectionRule struct {
	Pattern   *regexp.Regexp
	Direction models.Direction
}

// LineShape identifies which statement line layout a rule recognizes.
type LineShape int

const (
	// ShapeFiveField matches date, description, debit, credit, running balance.
	ShapeFiveField LineShape = iota
	// ShapeFourField matches date, description, Dr/Cr marker, amount.
	ShapeFourField
)

// StatementRule is one line-shape pattern for statement text, ordered from
// most specific to most general in the library.
type StatementRule struct {
	Shape   LineShape
	Pattern *regexp.Regexp
}

// CategoryRule maps a category name to the keywords that select it. Rules are
// evaluated in declaration order; the first rule containing a hit wins.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Library is the process-wide, read-only pattern configuration. Construct one
// with Default (optionally overriding categories) and pass it to each
// component at creation time.
type Library struct {
	amount     []*regexp.Regexp
	direction  []DirectionRule
	account    []*regexp.Regexp
	merchant   []*regexp.Regexp
	date       []*regexp.Regexp
	bank       []*regexp.Regexp
	statement  []StatementRule
	categories []CategoryRule
}

// Default builds the Library with the built-in rule sets for Indian bank
// statement and SMS formats.
func Default() *Library {
	return &Library{
		amount: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*([\d,]+\.?\d*)`),
			regexp.MustCompile(`(?i)(?:amount|amt)\s*(?:of)?\s*(?:rs\.?|inr|₹)?\s*([\d,]+\.?\d*)`),
			regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*(?:rs\.?|inr|₹)`),
		},
		direction: []DirectionRule{
			{regexp.MustCompile(`(?i)debited|debit|spent|paid|purchase|withdrawal`), models.DirectionDebit},
			{regexp.MustCompile(`(?i)credited|credit|received|deposited|refund`), models.DirectionCredit},
		},
		account: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:a/c|account)\s*(?:no\.?|number)?\s*(?:xx|ending|\*{2,})?([\dXx*]{4,})`),
			regexp.MustCompile(`(?i)card\s*(?:ending|no\.?)\s*([\d*]{4})`),
		},
		merchant: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:at|to|from)\s+([A-Z][A-Z0-9\s&.-]+?)(?:\s+on|\.\s|,|$)`),
			regexp.MustCompile(`(?i)(?:merchant|vendor):\s*([A-Z][A-Za-z0-9\s&.-]+)`),
		},
		date: []*regexp.Regexp{
			regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			regexp.MustCompile(`(?i)(\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{2,4})`),
		},
		bank: []*regexp.Regexp{
			// Word-bounded form as it appears in SMS sender IDs and bodies.
			regexp.MustCompile(`(?i)\b(HDFC|ICICI|SBI|AXIS|KOTAK|IDFC|PNB|BOB|CANARA|UNION|HSBC|CITI|STANDARD CHARTERED|YES|INDUSIND|IDBI)(?:\s+BANK)?\b`),
			// Loose substring form for email addresses like alerts@icicibank.com.
			regexp.MustCompile(`(?i)(HDFC|ICICI|SBI|AXIS|KOTAK|IDFC|PNB|BANKOFBARODA|BOB|CANARA|UNIONBANK|HSBC|CITI|YES|INDUSIND|IDBI)`),
		},
		statement: []StatementRule{
			{ShapeFiveField, regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+([A-Za-z0-9\s\-/]+?)\s+(\d+\.\d{2}|-)\s+(\d+\.\d{2}|-)\s+(\d+\.\d{2})`)},
			{ShapeFourField, regexp.MustCompile(`(\d{2}-\d{2}-\d{4})\s+([A-Za-z0-9\s\-/]+?)\s+(Dr|Cr)\s+(\d+\.\d{2})`)},
		},
		categories: DefaultCategoryRules(),
	}
}

// WithCategories returns a copy of the library with the category rules
// replaced. The receiver is not modified; tests use this to substitute
// smaller rule sets.
func (l *Library) WithCategories(rules []CategoryRule) *Library {
	clone := *l
	clone.categories = rules
	return &clone
}

// AmountPatterns returns the ordered amount recognizers.
func (l *Library) AmountPatterns() []*regexp.Regexp { return l.amount }

// DirectionRules returns the ordered direction keyword families.
func (l *Library) DirectionRules() []DirectionRule { return l.direction }

// AccountPatterns returns the ordered account suffix recognizers.
func (l *Library) AccountPatterns() []*regexp.Regexp { return l.account }

// MerchantPatterns returns the ordered merchant recognizers.
func (l *Library) MerchantPatterns() []*regexp.Regexp { return l.merchant }

// DatePatterns returns the ordered date recognizers.
func (l *Library) DatePatterns() []*regexp.Regexp { return l.date }

// StatementRules returns the ordered statement line-shape rules.
func (l *Library) StatementRules() []StatementRule { return l.statement }

// CategoryRules returns the ordered category keyword rules.
func (l *Library) CategoryRules() []CategoryRule { return l.categories }

// DetectBank tries each text in order against the bank identity patterns and
// returns the first recognized bank. Texts that match nothing are skipped;
// BankUnknown is returned when no text matches.
func (l *Library) DetectBank(texts ...string) models.Bank {
	for _, text := range texts {
		if text == "" {
			continue
		}
		for _, pattern := range l.bank {
			if m := pattern.FindStringSubmatch(text); m != nil {
				if bank := models.ParseBank(m[1]); bank.IsKnown() {
					return bank
				}
			}
		}
	}
	return models.BankUnknown
}

// Categorize assigns a category to the given text by testing the category
// rules in their declared order. The first category with a keyword hit wins;
// text with no hits is "uncategorized". Matching is case-insensitive.
func (l *Library) Categorize(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range l.categories {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return rule.Name
			}
		}
	}
	return models.CategoryUncategorized
}
