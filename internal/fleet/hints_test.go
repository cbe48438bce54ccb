package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fleet-cli/internal/table"
)

func TestHintMatch_PaymentNamingDrift(t *testing.T) {
	// The same semantic column under different export spellings.
	for _, name := range []string{"Monthly Payment", "Payment/Month", "payment_per_month", "Est. Pay (Month)"} {
		assert.True(t, HintPayment.Match(name), "expected %q to match payment hint", name)
	}
	assert.False(t, HintPayment.Match("Payment Total"))
	assert.False(t, HintPayment.Match("Month"))
}

func TestHintMatch_Exclude(t *testing.T) {
	h := Hint{Name: "truck", Contains: []string{"truck"}, Exclude: []string{"price"}}
	assert.True(t, h.Match("Truck ID"))
	assert.False(t, h.Match("Truck Price"))
}

func TestFindColumn_FirstInColumnOrderWins(t *testing.T) {
	tab := table.New("Amount Paid", "Invoice Amount")
	tab.AppendRow(table.Row{"Amount Paid": "1", "Invoice Amount": "2"})

	col, ok := FindColumn(tab, HintAmount)
	require.True(t, ok)
	assert.Equal(t, "Amount Paid", col)
}

func TestFindColumn_Absent(t *testing.T) {
	tab := table.New("Reading Date", "Notes")

	_, ok := FindColumn(tab, HintOdometer)
	assert.False(t, ok)
}

func TestFindColumn_SkipsCanonicalKey(t *testing.T) {
	// clean_id must never satisfy a semantic hint lookup.
	tab := table.New("Unit", "Odometer Reading")
	tab.AppendRow(table.Row{"Unit": "1", "Odometer Reading": "100"})
	_, ok := ResolveIdentity(tab)
	require.True(t, ok)

	col, ok := FindColumn(tab, HintOdometer)
	require.True(t, ok)
	assert.Equal(t, "Odometer Reading", col)
}

func TestFindColumn_NilTable(t *testing.T) {
	_, ok := FindColumn(nil, HintAmount)
	assert.False(t, ok)
}
