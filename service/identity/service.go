package identity

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"

	"github.com/elC0mpa/azure-optimizer/model"
)

func NewService(credential azcore.TokenCredential) (*service, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	return &service{client: client}, nil
}

// ListSubscriptions implements service.IdentityService. The order is the
// order the API returns subscriptions in.
func (s *service) ListSubscriptions(ctx context.Context) ([]string, error) {
	var ids []string

	pager := s.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, model.ClassifyAzureError("list subscriptions", err)
		}

		for _, sub := range page.Value {
			if sub.SubscriptionID == nil {
				continue
			}
			ids = append(ids, *sub.SubscriptionID)
		}
	}

	return ids, nil
}

// Resolve implements service.IdentityService. A configured subscription is
// taken as-is; otherwise the first subscription visible to the credential
// is used.
func (s *service) Resolve(ctx context.Context, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	ids, err := s.ListSubscriptions(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", &model.NoSubscriptionError{}
	}
	return ids[0], nil
}
