// Package statement extracts transaction candidates from unlocked bank
// statement text. Line-oriented text is scanned with an ordered list of
// line-shape patterns, from most specific (five columns: date, description,
// debit, credit, running balance) to more general (four columns: date,
// description, Dr/Cr marker, amount). The first pattern in the list that
// matches a given text span wins for that span.
package statement

import (
	"strings"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
	"finsight/finsight/internal/patterns"
)

// zeroMarker is the literal banks print in an empty debit or credit column.
// A field holding it is absent, not a genuine zero-amount transaction.
const zeroMarker = "-"

// merchantPrefixLen caps the merchant label derived from the description.
const merchantPrefixLen = 50

// Extractor converts statement text into normalized transaction candidates.
type Extractor struct {
	library *patterns.Library
	logger  logging.Logger
}

// NewExtractor creates an Extractor over the given pattern library.
func NewExtractor(library *patterns.Library, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{library: library, logger: logger}
}

// Extract scans the text with every statement line rule and collects all
// matches. Zero matches is a successful extraction with zero results: pure
// marketing statements and unsupported formats legitimately produce nothing.
// Lines that match no known pattern are silently excluded; no partial record
// is ever emitted.
//
// Dates are retained exactly as matched. Normalization to a calendar date is
// the reconciler's responsibility.
func (e *Extractor) Extract(text string) []models.TransactionCandidate {
	var candidates []models.TransactionCandidate
	var claimed [][2]int

	for _, rule := range e.library.StatementRules() {
		for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			if overlapsAny(claimed, loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})

			groups := submatches(text, loc)
			candidate, ok := e.buildCandidate(rule.Shape, groups, text[loc[0]:loc[1]])
			if !ok {
				continue
			}
			candidates = append(candidates, candidate)
		}
	}

	e.logger.Debug("Extracted statement candidates",
		logging.Field{Key: "count", Value: len(candidates)})
	return candidates
}

// buildCandidate classifies one matched span. The populated column (or the
// Dr/Cr marker) decides the direction; a span with neither column populated
// is dropped as ambiguous.
func (e *Extractor) buildCandidate(shape patterns.LineShape, groups []string, raw string) (models.TransactionCandidate, bool) {
	candidate := models.TransactionCandidate{
		RawDate:     groups[1],
		Description: strings.TrimSpace(groups[2]),
		Category:    models.CategoryUncategorized,
		Provenance:  models.ProvenanceStatement,
		RawText:     raw,
	}

	switch shape {
	case patterns.ShapeFiveField:
		debit, credit := groups[3], groups[4]
		switch {
		case debit != zeroMarker:
			candidate.Direction = models.DirectionDebit
			candidate.Amount = models.ParseAmount(debit)
		case credit != zeroMarker:
			candidate.Direction = models.DirectionCredit
			candidate.Amount = models.ParseAmount(credit)
		default:
			return models.TransactionCandidate{}, false
		}
	case patterns.ShapeFourField:
		if strings.EqualFold(groups[3], "Cr") {
			candidate.Direction = models.DirectionCredit
		} else {
			candidate.Direction = models.DirectionDebit
		}
		candidate.Amount = models.ParseAmount(groups[4])
	default:
		return models.TransactionCandidate{}, false
	}

	if candidate.Amount.IsZero() {
		return models.TransactionCandidate{}, false
	}

	candidate.Merchant = merchantLabel(candidate.Description)
	return candidate, true
}

// merchantLabel derives a best-effort merchant label from the description.
func merchantLabel(description string) string {
	if len(description) > merchantPrefixLen {
		return strings.TrimSpace(description[:merchantPrefixLen])
	}
	return description
}

// overlapsAny reports whether [start, end) intersects a claimed span.
func overlapsAny(claimed [][2]int, start, end int) bool {
	for _, span := range claimed {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

// submatches extracts the capture group strings from a SubmatchIndex result.
func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			groups[i] = text[start:end]
		}
	}
	return groups
}
