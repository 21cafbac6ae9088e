package pricing

import "github.com/shopspring/decimal"

// Version identifies the embedded price and tier snapshot. Prices are
// East US pay-as-you-go list prices and are approximations; a live price
// sheet client can replace the static source behind PriceSource.
const Version = "2024-06"

// skuFamilies holds the ordered tier lists used by the right-sizing
// heuristic, smallest tier first.
var skuFamilies = [][]SKUTier{
	{
		{Name: "Standard_DS1_v2", VCPUs: 1},
		{Name: "Standard_DS2_v2", VCPUs: 2},
		{Name: "Standard_DS3_v2", VCPUs: 4},
		{Name: "Standard_DS4_v2", VCPUs: 8},
	},
	{
		{Name: "Standard_D2s_v3", VCPUs: 2},
		{Name: "Standard_D4s_v3", VCPUs: 4},
		{Name: "Standard_D8s_v3", VCPUs: 8},
		{Name: "Standard_D16s_v3", VCPUs: 16},
	},
	{
		{Name: "Standard_F2s_v2", VCPUs: 2},
		{Name: "Standard_F4s_v2", VCPUs: 4},
		{Name: "Standard_F8s_v2", VCPUs: 8},
		{Name: "Standard_F16s_v2", VCPUs: 16},
	},
	{
		{Name: "Standard_B1s", VCPUs: 1},
		{Name: "Standard_B2s", VCPUs: 2},
		{Name: "Standard_B4ms", VCPUs: 4},
	},
}

// FamilyTiers returns the ordered tier list containing sku and the index
// of sku within it.
func FamilyTiers(sku string) ([]SKUTier, int, bool) {
	for _, family := range skuFamilies {
		for i, tier := range family {
			if tier.Name == sku {
				return family, i, true
			}
		}
	}
	return nil, 0, false
}

// NewStaticPriceList returns the embedded PriceSource snapshot.
func NewStaticPriceList() PriceSource {
	return &staticPriceList{
		vm: map[string]decimal.Decimal{
			"Standard_DS1_v2":  decimal.RequireFromString("0.057"),
			"Standard_DS2_v2":  decimal.RequireFromString("0.114"),
			"Standard_DS3_v2":  decimal.RequireFromString("0.229"),
			"Standard_DS4_v2":  decimal.RequireFromString("0.458"),
			"Standard_D2s_v3":  decimal.RequireFromString("0.096"),
			"Standard_D4s_v3":  decimal.RequireFromString("0.192"),
			"Standard_D8s_v3":  decimal.RequireFromString("0.384"),
			"Standard_D16s_v3": decimal.RequireFromString("0.768"),
			"Standard_F2s_v2":  decimal.RequireFromString("0.085"),
			"Standard_F4s_v2":  decimal.RequireFromString("0.169"),
			"Standard_F8s_v2":  decimal.RequireFromString("0.338"),
			"Standard_F16s_v2": decimal.RequireFromString("0.677"),
			"Standard_B1s":     decimal.RequireFromString("0.0104"),
			"Standard_B2s":     decimal.RequireFromString("0.0416"),
			"Standard_B4ms":    decimal.RequireFromString("0.166"),
		},
		disk: map[string]decimal.Decimal{
			"Standard_LRS":    decimal.RequireFromString("0.045"),
			"StandardSSD_LRS": decimal.RequireFromString("0.075"),
			"Premium_LRS":     decimal.RequireFromString("0.135"),
			"PremiumV2_LRS":   decimal.RequireFromString("0.120"),
			"UltraSSD_LRS":    decimal.RequireFromString("0.300"),
		},
	}
}

func (p *staticPriceList) VMHourlyPrice(sku string) (decimal.Decimal, bool) {
	price, ok := p.vm[sku]
	return price, ok
}

func (p *staticPriceList) DiskMonthlyPerGB(skuName string) (decimal.Decimal, bool) {
	price, ok := p.disk[skuName]
	return price, ok
}
