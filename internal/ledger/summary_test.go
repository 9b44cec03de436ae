package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ravel57/grosze-bot/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOutboundTotals(t *testing.T) {
	transfers := []domain.Transfer{
		{FromUserID: 1, ToUserID: 2, Amount: dec("30")},
		{FromUserID: 1, ToUserID: 2, Amount: dec("12")},
		{FromUserID: 2, ToUserID: 1, Amount: dec("10")}, // inbound, ignored
		{FromUserID: 1, ToUserID: 3, Amount: dec("5.50")},
	}
	names := map[int64]string{2: "Боря", 3: "Вика"}

	got := OutboundTotals(1, transfers, names)
	if len(got) != 2 {
		t.Fatalf("got %d totals, want 2", len(got))
	}
	if got[0].Name != "Боря" || !got[0].Amount.Equal(dec("42")) {
		t.Errorf("totals[0] = %s %s, want Боря 42", got[0].Name, got[0].Amount)
	}
	if got[1].Name != "Вика" || !got[1].Amount.Equal(dec("5.5")) {
		t.Errorf("totals[1] = %s %s, want Вика 5.5", got[1].Name, got[1].Amount)
	}
}

func TestNetBalances(t *testing.T) {
	transfers := []domain.Transfer{
		{FromUserID: 1, ToUserID: 2, Amount: dec("30")},
		{FromUserID: 1, ToUserID: 2, Amount: dec("12")},
		{FromUserID: 2, ToUserID: 1, Amount: dec("10")},
	}
	got := NetBalances(1, transfers, map[int64]string{2: "Боря"})
	if len(got) != 1 {
		t.Fatalf("got %d balances, want 1", len(got))
	}
	// Positive: user 1 gave 42 and took 10 back, so is owed 32.
	if !got[0].Amount.Equal(dec("32")) {
		t.Errorf("net = %s, want 32", got[0].Amount)
	}

	// Flip the perspective: user 2 owes 32.
	got = NetBalances(2, transfers, map[int64]string{1: "Аня"})
	if len(got) != 1 || !got[0].Amount.Equal(dec("-32")) {
		t.Errorf("net for other side = %v, want -32", got)
	}
}

func TestNetBalancesUnknownName(t *testing.T) {
	transfers := []domain.Transfer{
		{FromUserID: 1, ToUserID: 9, Amount: dec("7")},
	}
	got := NetBalances(1, transfers, nil)
	if len(got) != 1 {
		t.Fatalf("got %d balances, want 1", len(got))
	}
	if got[0].Name != UnknownCounterparty {
		t.Errorf("name = %q, want unknown label", got[0].Name)
	}
}

func TestTotalsEmpty(t *testing.T) {
	if got := OutboundTotals(1, nil, nil); len(got) != 0 {
		t.Errorf("outbound on empty ledger = %v", got)
	}
	if got := NetBalances(1, nil, nil); len(got) != 0 {
		t.Errorf("net on empty ledger = %v", got)
	}
}
