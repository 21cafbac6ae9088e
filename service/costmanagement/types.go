package costmanagement

import (
	"sync/atomic"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement/v2"
)

type service struct {
	subscriptionID string
	client         *armcostmanagement.QueryClient

	// skippedRows is atomic: the service instance is shared by rules the
	// engine runs on parallel workers.
	skippedRows atomic.Int64
}

// Grouping dimensions accepted by QueryCost.
const (
	GroupByResource      = "ResourceId"
	GroupByResourceGroup = "ResourceGroupName"
)

// Column names in the query response. Grouped daily queries return
// [Cost, UsageDate, <group>, Currency]; monthly queries date rows with
// BillingMonth instead of UsageDate.
const (
	columnCost         = "Cost"
	columnUsageDate    = "UsageDate"
	columnBillingMonth = "BillingMonth"
	columnCurrency     = "Currency"
)
