package passwords

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finsight/finsight/internal/models"
)

var fullInfo = PersonalInfo{
	DateOfBirth: "15011990",
	Mobile:      "9876543210",
	Account:     "12345678901234",
	TaxID:       "abcde1234f",
}

func TestGenerateOrderPerBank(t *testing.T) {
	tests := []struct {
		name string
		bank models.Bank
		want []string
	}{
		{"icici dob forms", models.BankICICI, []string{"15011990", "15jan1990"}},
		{"hdfc dob then tax id", models.BankHDFC, []string{"15011990", "1234F"}},
		{"axis dob then mobile", models.BankAxis, []string{"15011990", "3210"}},
		{"sbi dob then account", models.BankSBI, []string{"15011990", "1234"}},
		{"kotak short dob then mobile", models.BankKotak, []string{"011990", "3210"}},
		{"indusind tax id first", models.BankIndusInd, []string{"ABCDE1234F", "15011990"}},
		{"unknown bank default policy", models.BankUnknown, []string{"15011990", "3210", "1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.bank, fullInfo, ""))
		})
	}
}

func TestGenerateCustomPasswordFirst(t *testing.T) {
	got := Generate(models.BankICICI, fullInfo, "hunter2")
	assert.Equal(t, []string{"hunter2", "15011990", "15jan1990"}, got)
}

func TestGenerateDeduplicates(t *testing.T) {
	// Custom password equal to a derived candidate appears only once, in
	// front.
	got := Generate(models.BankICICI, fullInfo, "15011990")
	assert.Equal(t, []string{"15011990", "15jan1990"}, got)
}

func TestGenerateMissingInfoSkipsRules(t *testing.T) {
	info := PersonalInfo{Mobile: "9876543210"}
	got := Generate(models.BankAxis, info, "")
	assert.Equal(t, []string{"3210"}, got, "rules without data contribute nothing")
}

func TestGenerateEmptyInfo(t *testing.T) {
	assert.Empty(t, Generate(models.BankHDFC, PersonalInfo{}, ""))
}

func TestGenerateMalformedDOB(t *testing.T) {
	// DOBDayMonthYear needs a parseable DDMMYYYY date; the verbatim rule
	// still uses the raw string.
	info := PersonalInfo{DateOfBirth: "99999999"}
	got := Generate(models.BankICICI, info, "")
	assert.Equal(t, []string{"99999999"}, got)
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate(models.BankSBI, fullInfo, "x")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(models.BankSBI, fullInfo, "x"))
	}
}
