// Package sms extracts at most one transaction candidate from a forwarded
// bank SMS. The amount is the only mandatory field: a message with no
// recognizable amount is not a transaction and yields no candidate, which is
// a normal outcome rather than an error.
package sms

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
	"finsight/finsight/internal/patterns"
)

// merchantMaxLen caps extracted merchant labels.
const merchantMaxLen = 100

// dateLayouts is the fixed sequence of calendar formats tried against a
// matched date span. Day-first, per the formats Indian banks use.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"2 Jan 2006",
	"2 January 2006",
}

var whitespaceRe = regexp.MustCompile(`\s+`)
var digitRe = regexp.MustCompile(`\d`)

// Parser extracts transaction candidates from SMS text using the pattern
// library. Parsers are stateless apart from the library and safe for
// concurrent use.
type Parser struct {
	library *patterns.Library
	logger  logging.Logger
	now     func() time.Time
}

// NewParser creates a Parser over the given pattern library.
func NewParser(library *patterns.Library, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{library: library, logger: logger, now: time.Now}
}

// Parse extracts a transaction candidate from one message. The boolean is
// false when the message carries no recognizable amount.
func (p *Parser) Parse(text, sender string) (models.TransactionCandidate, bool) {
	amount, ok := p.extractAmount(text)
	if !ok {
		return models.TransactionCandidate{}, false
	}

	merchant := p.extractMerchant(text)
	occurredAt, rawDate := p.extractDate(text)

	candidate := models.TransactionCandidate{
		Amount:       amount,
		Direction:    p.extractDirection(text),
		OccurredAt:   occurredAt,
		RawDate:      rawDate,
		Merchant:     merchant,
		AccountLast4: p.extractAccount(text),
		Bank:         p.library.DetectBank(sender, text),
		Category:     p.library.Categorize(merchant + " " + text),
		Provenance:   models.ProvenanceSMS,
		RawText:      text,
		SMSSender:    sender,
	}

	p.logger.Debug("Parsed SMS candidate",
		logging.Field{Key: "amount", Value: candidate.Amount.String()},
		logging.Field{Key: "direction", Value: string(candidate.Direction)},
		logging.Field{Key: "bank", Value: candidate.Bank.String()})
	return candidate, true
}

// extractAmount tries the amount patterns in order and returns the first
// parseable match. A parsed amount of zero means no transaction.
func (p *Parser) extractAmount(text string) (decimal.Decimal, bool) {
	for _, pattern := range p.library.AmountPatterns() {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if amount.IsZero() {
			return decimal.Decimal{}, false
		}
		return amount, true
	}
	return decimal.Decimal{}, false
}

// extractDirection scans the direction keyword families in order; the first
// family with a hit decides. Messages matching neither default to debit.
func (p *Parser) extractDirection(text string) models.Direction {
	for _, rule := range p.library.DirectionRules() {
		if rule.Pattern.MatchString(text) {
			return rule.Direction
		}
	}
	return models.DirectionDebit
}

// extractAccount returns the trailing 4 digits of the first account span
// holding at least 4 digits, or empty when none does.
func (p *Parser) extractAccount(text string) string {
	for _, pattern := range p.library.AccountPatterns() {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		digits := digitRe.FindAllString(m[1], -1)
		if len(digits) >= 4 {
			return strings.Join(digits[len(digits)-4:], "")
		}
	}
	return ""
}

// extractMerchant returns the first merchant match, whitespace-collapsed and
// length-capped, or the UnknownMerchant placeholder when nothing matches.
func (p *Parser) extractMerchant(text string) string {
	for _, pattern := range p.library.MerchantPatterns() {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		merchant := whitespaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		if len(merchant) > merchantMaxLen {
			merchant = merchant[:merchantMaxLen]
		}
		return merchant
	}
	return models.UnknownMerchant
}

// extractDate finds a date span and runs the fixed layout sequence over it.
// When extraction or every parse fails, the current processing time is used.
func (p *Parser) extractDate(text string) (time.Time, string) {
	firstMatch := ""
	for _, pattern := range p.library.DatePatterns() {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if firstMatch == "" {
			firstMatch = m[1]
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, m[1]); err == nil {
				return t, m[1]
			}
		}
	}
	return p.now(), firstMatch
}
