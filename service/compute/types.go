package compute

import (
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
)

type service struct {
	subscriptionID string
	disksClient    *armcompute.DisksClient
	vmClient       *armcompute.VirtualMachinesClient

	// now is the run timestamp disk ages are measured against.
	now func() time.Time
}
