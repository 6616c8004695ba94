package valuation

import (
	"math"

	"github.com/Rhymond/go-money"
)

// The portal formats Rupiah the id-ID way: no decimals, dot as thousand
// separator. go-money ships IDR with two fraction digits, so register the
// display variant once.
func init() {
	money.AddCurrency("IDR", "Rp", "$ 1", ",", ".", 0)
}

// FormatIDR renders an amount as display Rupiah (e.g. "Rp 96.000.000").
// Computation stays on raw numerics; this is for report view models only.
func FormatIDR(v float64) string {
	return money.New(int64(math.Round(v)), money.IDR).Display()
}
