package models

import "strings"

// Bank identifies a supported issuing bank. The set is closed: free-form labels
// are funnelled through ParseBank so that behavior selection (password policies,
// identity detection) never keys off raw user strings.
type Bank string

const (
	BankICICI    Bank = "ICICI"
	BankHDFC     Bank = "HDFC"
	BankAxis     Bank = "AXIS"
	BankSBI      Bank = "SBI"
	BankKotak    Bank = "KOTAK"
	BankYes      Bank = "YES"
	BankIndusInd Bank = "INDUSIND"
	BankBOB      Bank = "BOB"
	BankPNB      Bank = "PNB"
	BankCanara   Bank = "CANARA"
	BankUnion    Bank = "UNION"
	BankIDBI     Bank = "IDBI"
	BankIDFC     Bank = "IDFC"
	BankHSBC     Bank = "HSBC"
	BankCiti     Bank = "CITI"
	BankSC       Bank = "SC"

	// BankUnknown is the explicit fallback variant for unrecognized labels.
	BankUnknown Bank = "UNKNOWN"
)

// allBanks lists every supported bank in a fixed order.
var allBanks = []Bank{
	BankICICI, BankHDFC, BankAxis, BankSBI, BankKotak, BankYes, BankIndusInd,
	BankBOB, BankPNB, BankCanara, BankUnion, BankIDBI, BankIDFC, BankHSBC,
	BankCiti, BankSC,
}

// bankAliases maps normalized label forms to banks. Aliases cover the sender
// addresses and subject fragments banks actually use.
var bankAliases = map[string]Bank{
	"icici":              BankICICI,
	"icicibank":          BankICICI,
	"hdfc":               BankHDFC,
	"hdfcbank":           BankHDFC,
	"axis":               BankAxis,
	"axisbank":           BankAxis,
	"sbi":                BankSBI,
	"onlinesbi":          BankSBI,
	"statebankofindia":   BankSBI,
	"kotak":              BankKotak,
	"kotakbank":          BankKotak,
	"yes":                BankYes,
	"yesbank":            BankYes,
	"indusind":           BankIndusInd,
	"bob":                BankBOB,
	"bankofbaroda":       BankBOB,
	"pnb":                BankPNB,
	"pnbindia":           BankPNB,
	"canara":             BankCanara,
	"canarabank":         BankCanara,
	"union":              BankUnion,
	"unionbank":          BankUnion,
	"idbi":               BankIDBI,
	"idbibank":           BankIDBI,
	"idfc":               BankIDFC,
	"hsbc":               BankHSBC,
	"citi":               BankCiti,
	"sc":                 BankSC,
	"standardchartered":  BankSC,
	"standard chartered": BankSC,
}

// ParseBank maps a free-form, case-insensitive label to a Bank. Unknown labels
// yield BankUnknown rather than an error.
func ParseBank(label string) Bank {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.TrimSuffix(normalized, " bank")
	if bank, ok := bankAliases[normalized]; ok {
		return bank
	}
	return BankUnknown
}

// AllBanks returns the supported banks in their fixed declaration order.
func AllBanks() []Bank {
	banks := make([]Bank, len(allBanks))
	copy(banks, allBanks)
	return banks
}

// IsKnown reports whether the bank is one of the supported variants.
func (b Bank) IsKnown() bool {
	return b != BankUnknown && b != ""
}

func (b Bank) String() string {
	if b == "" {
		return string(BankUnknown)
	}
	return string(b)
}
