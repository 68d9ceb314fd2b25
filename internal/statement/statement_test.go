package statement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
	"finsight/finsight/internal/patterns"
)

func newTestExtractor() *Extractor {
	return NewExtractor(patterns.Default(), logging.NewMockLogger())
}

func TestExtractFiveFieldLines(t *testing.T) {
	text := "01/01/2024 SALARY CREDIT - 50000.00 150000.00\n" +
		"05/01/2024 GROCERY STORE 2500.00 - 147500.00\n"

	candidates := newTestExtractor().Extract(text)
	require.Len(t, candidates, 2)

	credit := candidates[0]
	assert.Equal(t, models.DirectionCredit, credit.Direction)
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "01/01/2024", credit.RawDate)
	assert.Contains(t, credit.Description, "SALARY")
	assert.Equal(t, models.ProvenanceStatement, credit.Provenance)

	debit := candidates[1]
	assert.Equal(t, models.DirectionDebit, debit.Direction)
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(2500)))
	assert.Contains(t, debit.Description, "GROCERY")
}

func TestExtractFourFieldLines(t *testing.T) {
	text := "15-02-2024 UPI/SWIGGY/PAYMENT Dr 450.00\n" +
		"16-02-2024 NEFT REFUND Cr 1200.00\n"

	candidates := newTestExtractor().Extract(text)
	require.Len(t, candidates, 2)

	assert.Equal(t, models.DirectionDebit, candidates[0].Direction)
	assert.True(t, candidates[0].Amount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, models.DirectionCredit, candidates[1].Direction)
	assert.True(t, candidates[1].Amount.Equal(decimal.NewFromInt(1200)))
}

func TestExtractBothColumnsAbsentDropsLine(t *testing.T) {
	text := "01/01/2024 BALANCE NOTE - - 147500.00\n"
	assert.Empty(t, newTestExtractor().Extract(text))
}

func TestExtractNoMatchesIsSuccess(t *testing.T) {
	text := "Dear customer, thank you for banking with us.\nVisit our offers page!"
	candidates := newTestExtractor().Extract(text)
	assert.Empty(t, candidates, "marketing text legitimately yields nothing")
}

func TestExtractEmptyText(t *testing.T) {
	assert.Empty(t, newTestExtractor().Extract(""))
}

func TestExtractMerchantLabelCapped(t *testing.T) {
	longDesc := "VERY LONG MERCHANT DESCRIPTION THAT KEEPS GOING AND GOING WELL PAST THE CAP"
	text := "01/01/2024 " + longDesc + " 100.00 - 900.00\n"

	candidates := newTestExtractor().Extract(text)
	require.Len(t, candidates, 1)
	assert.LessOrEqual(t, len(candidates[0].Merchant), 50)
	assert.NotEmpty(t, candidates[0].Merchant)
}

func TestExtractKeepsRawDate(t *testing.T) {
	text := "15-02-2024 UPI PAYMENT Dr 450.00\n"
	candidates := newTestExtractor().Extract(text)
	require.Len(t, candidates, 1)
	assert.Equal(t, "15-02-2024", candidates[0].RawDate, "date normalization happens later")
	assert.True(t, candidates[0].OccurredAt.IsZero())
}
