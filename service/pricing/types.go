package pricing

import "github.com/shopspring/decimal"

// SKUTier is one entry in a family's ordered tier list, smallest first.
type SKUTier struct {
	Name  string
	VCPUs int
}

// PriceSource supplies list prices for savings estimation. Implementations
// must return ok=false rather than guess when a price is unknown; callers
// then omit the estimate instead of fabricating one.
type PriceSource interface {
	// VMHourlyPrice returns the pay-as-you-go hourly price for a VM SKU.
	VMHourlyPrice(sku string) (decimal.Decimal, bool)

	// DiskMonthlyPerGB returns the monthly per-GB price for a disk tier.
	DiskMonthlyPerGB(skuName string) (decimal.Decimal, bool)
}

type staticPriceList struct {
	vm   map[string]decimal.Decimal
	disk map[string]decimal.Decimal
}
