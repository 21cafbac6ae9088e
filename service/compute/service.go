package compute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"

	"github.com/elC0mpa/azure-optimizer/model"
)

func NewService(subscriptionID string, credential azcore.TokenCredential) (*service, error) {
	disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create disks client: %w", err)
	}

	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create VM client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		disksClient:    disksClient,
		vmClient:       vmClient,
		now:            time.Now,
	}, nil
}

// ListDisks implements service.ResourceService. Age is whole days between
// the run time and the disk's creation time.
func (s *service) ListDisks(ctx context.Context) ([]model.DiskRecord, error) {
	var disks []model.DiskRecord
	now := s.now().UTC()

	pager := s.disksClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, model.ClassifyAzureError("list disks", err)
		}

		for _, disk := range page.Value {
			if disk.ID == nil || disk.Name == nil || disk.Properties == nil {
				continue
			}

			attached := true
			if disk.Properties.DiskState != nil {
				attached = *disk.Properties.DiskState != armcompute.DiskStateUnattached
			}

			ageDays := 0
			if disk.Properties.TimeCreated != nil {
				ageDays = int(now.Sub(disk.Properties.TimeCreated.UTC()).Hours() / 24)
			}

			var sizeGB int32
			if disk.Properties.DiskSizeGB != nil {
				sizeGB = *disk.Properties.DiskSizeGB
			}

			skuName := ""
			if disk.SKU != nil && disk.SKU.Name != nil {
				skuName = string(*disk.SKU.Name)
			}

			disks = append(disks, model.DiskRecord{
				ResourceID:    *disk.ID,
				Name:          *disk.Name,
				ResourceGroup: extractResourceGroup(*disk.ID),
				Attached:      attached,
				AgeDays:       ageDays,
				SizeGB:        sizeGB,
				SKUName:       skuName,
			})
		}
	}

	return disks, nil
}

// ListVirtualMachines implements service.ResourceService.
func (s *service) ListVirtualMachines(ctx context.Context) ([]model.VMRecord, error) {
	var vms []model.VMRecord

	pager := s.vmClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, model.ClassifyAzureError("list virtual machines", err)
		}

		for _, vm := range page.Value {
			if vm.ID == nil || vm.Name == nil {
				continue
			}

			sku := ""
			if vm.Properties != nil && vm.Properties.HardwareProfile != nil &&
				vm.Properties.HardwareProfile.VMSize != nil {
				sku = string(*vm.Properties.HardwareProfile.VMSize)
			}

			location := ""
			if vm.Location != nil {
				location = *vm.Location
			}

			vms = append(vms, model.VMRecord{
				ResourceID:    *vm.ID,
				Name:          *vm.Name,
				ResourceGroup: extractResourceGroup(*vm.ID),
				SKU:           sku,
				Location:      location,
			})
		}
	}

	return vms, nil
}

func extractResourceGroup(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}
