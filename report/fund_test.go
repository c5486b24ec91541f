package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/societyhub/society-portal-go/models"
)

func sampleEntries() []models.FundEntry {
	return []models.FundEntry{
		{Title: "Diwali collection", Amount: 100, Type: models.FundCredit, Date: "2026-01-10"},
		{Title: "Garden maintenance", Amount: 40, Type: models.FundDebit, Date: "2026-01-15"},
		{Title: "Parking fees", Amount: 25.50, Type: models.FundCredit, Date: "2026-02-01"},
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 85.5, Total(sampleEntries()))
	assert.Equal(t, 0.0, Total(nil))
}

func TestTotalIgnoresDisplayFilters(t *testing.T) {
	entries := sampleEntries()
	filtered := Filter(entries, models.FundCredit, "")
	assert.Len(t, filtered, 2)

	// the balance is always over the full set, never the filtered view
	assert.Equal(t, 85.5, Total(entries))
	assert.NotEqual(t, Total(entries), Total(filtered))
}

func TestFilter(t *testing.T) {
	entries := sampleEntries()

	assert.Len(t, Filter(entries, "", ""), 3)
	assert.Len(t, Filter(entries, models.FundDebit, ""), 1)
	assert.Len(t, Filter(entries, "", "2026-01-10"), 1)
	assert.Empty(t, Filter(entries, models.FundDebit, "2026-01-10"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹ 60.00", FormatAmount(60))
	assert.Equal(t, "₹ 25.50", FormatAmount(25.5))
	assert.Equal(t, "₹ -14.50", FormatAmount(-14.5))
}

func TestFundReportRendersPDF(t *testing.T) {
	out, err := FundReport(sampleEntries())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFundReportEmptyLedger(t *testing.T) {
	out, err := FundReport(nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
