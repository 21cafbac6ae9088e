package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/elC0mpa/azure-optimizer/service/config"
	"github.com/elC0mpa/azure-optimizer/service/credential"
	"github.com/elC0mpa/azure-optimizer/service/identity"
)

var subscriptionsCmd = &cobra.Command{
	Use:   "subscriptions",
	Short: "List the subscriptions visible to the resolved credential",
	RunE:  runSubscriptions,
}

func runSubscriptions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, _, err := config.Load(ctx)
	if err != nil {
		return err
	}

	cred, err := credential.Resolve(cfg)
	if err != nil {
		return err
	}

	identityService, err := identity.NewService(cred)
	if err != nil {
		return err
	}
	subscriptions, err := identityService.ListSubscriptions(ctx)
	if err != nil {
		return err
	}

	fmt.Printf(" Credential: %s\n", text.FgCyan.Sprint(credential.SelectedProvider(cfg)))
	for _, id := range subscriptions {
		marker := " "
		if id == cfg.SubscriptionID {
			marker = text.FgHiGreen.Sprint("*")
		}
		fmt.Printf(" %s %s\n", marker, id)
	}
	return nil
}
