// Package passwords generates ordered password candidates for encrypted bank
// statements. Banks protect statement PDFs with passwords derived from the
// customer's personal identifiers; each bank declares its own derivation
// policy. Candidate order is deterministic for identical inputs so that
// retries are reproducible and the first success is stable.
package passwords

import (
	"strings"
	"time"

	"finsight/finsight/internal/models"
)

// Rule is a single password derivation step in a bank policy.
type Rule int

const (
	// DOBVerbatim uses the 8-digit day-month-year date of birth as supplied.
	DOBVerbatim Rule = iota
	// DOBLast6 uses the last 6 digits of the date of birth (DDMMYY).
	DOBLast6
	// DOBDayMonthYear formats the date of birth as day + abbreviated month +
	// year, lower-case, e.g. 15apr1990.
	DOBDayMonthYear
	// MobileLast4 uses the last 4 digits of the mobile number.
	MobileLast4
	// AccountLast4 uses the last 4 digits of the account number.
	AccountLast4
	// TaxIDVerbatim uses the tax identifier upper-cased.
	TaxIDVerbatim
	// TaxIDLast4 uses the last 4 characters of the tax identifier, upper-cased.
	TaxIDLast4
)

// PersonalInfo carries the optional identifiers password policies draw on.
// Any field may be empty; a rule referencing a missing field contributes no
// candidate.
type PersonalInfo struct {
	DateOfBirth string // DDMMYYYY
	Mobile      string
	Account     string
	TaxID       string
}

// bankPolicies maps each bank to its declared derivation order.
var bankPolicies = map[models.Bank][]Rule{
	models.BankICICI:    {DOBVerbatim, DOBDayMonthYear},
	models.BankHDFC:     {DOBVerbatim, TaxIDLast4},
	models.BankAxis:     {DOBVerbatim, MobileLast4},
	models.BankSBI:      {DOBVerbatim, AccountLast4},
	models.BankKotak:    {DOBLast6, MobileLast4},
	models.BankYes:      {DOBVerbatim},
	models.BankIndusInd: {TaxIDVerbatim, DOBVerbatim},
	models.BankBOB:      {DOBVerbatim},
	models.BankPNB:      {DOBVerbatim},
	models.BankCanara:   {DOBVerbatim},
	models.BankUnion:    {DOBVerbatim},
	models.BankIDBI:     {DOBVerbatim},
}

// defaultPolicy applies to banks without a declared policy, including unknown
// banks.
var defaultPolicy = []Rule{DOBVerbatim, MobileLast4, AccountLast4}

// PolicyFor returns the derivation rules for a bank, falling back to the
// default policy for banks without one.
func PolicyFor(bank models.Bank) []Rule {
	if policy, ok := bankPolicies[bank]; ok {
		return policy
	}
	return defaultPolicy
}

// Generate produces the ordered, de-duplicated password candidate list for a
// bank. A custom user-supplied password always comes first. Rules referencing
// missing personal data are skipped silently. With no identifiers and no
// custom password the result is empty, which is a valid terminal case.
func Generate(bank models.Bank, info PersonalInfo, custom string) []string {
	var candidates []string
	seen := make(map[string]bool)

	add := func(pw string) {
		if pw == "" || seen[pw] {
			return
		}
		seen[pw] = true
		candidates = append(candidates, pw)
	}

	add(custom)
	for _, rule := range PolicyFor(bank) {
		if pw, ok := derive(rule, info); ok {
			add(pw)
		}
	}
	return candidates
}

// derive applies one rule to the personal identifiers. The second return is
// false when the referenced data is missing or malformed.
func derive(rule Rule, info PersonalInfo) (string, bool) {
	switch rule {
	case DOBVerbatim:
		if info.DateOfBirth == "" {
			return "", false
		}
		return info.DateOfBirth, true
	case DOBLast6:
		if len(info.DateOfBirth) < 6 {
			return "", false
		}
		return info.DateOfBirth[len(info.DateOfBirth)-6:], true
	case DOBDayMonthYear:
		if info.DateOfBirth == "" {
			return "", false
		}
		dob, err := time.Parse("02012006", info.DateOfBirth)
		if err != nil {
			return "", false
		}
		return strings.ToLower(dob.Format("02Jan2006")), true
	case MobileLast4:
		if len(info.Mobile) < 4 {
			return "", false
		}
		return info.Mobile[len(info.Mobile)-4:], true
	case AccountLast4:
		if len(info.Account) < 4 {
			return "", false
		}
		return info.Account[len(info.Account)-4:], true
	case TaxIDVerbatim:
		if info.TaxID == "" {
			return "", false
		}
		return strings.ToUpper(info.TaxID), true
	case TaxIDLast4:
		if len(info.TaxID) < 4 {
			return "", false
		}
		return strings.ToUpper(info.TaxID[len(info.TaxID)-4:]), true
	}
	return "", false
}
