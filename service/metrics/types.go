package metrics

import (
	"github.com/Azure/azure-sdk-for-go/sdk/monitor/azquery"
)

type service struct {
	workspaceID string
	client      *azquery.LogsClient
}

// Result columns expected from usage queries.
const (
	columnResourceID = "ResourceId"
	columnAverageCPU = "AverageCpu"
)
