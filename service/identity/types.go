package identity

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

type service struct {
	client *armsubscriptions.Client
}
