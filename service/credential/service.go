package credential

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/elC0mpa/azure-optimizer/model"
)

// chain is evaluated in order; first applicable provider wins. The default
// chain is delegated entirely to azidentity, which covers managed identity,
// Azure CLI, and IDE sessions.
var chain = []provider{
	{
		name:    "service-principal",
		applies: func(cfg model.Config) bool { return cfg.HasServicePrincipal() },
		build: func(cfg model.Config) (azcore.TokenCredential, error) {
			return azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
		},
	},
	{
		name:    "default-chain",
		applies: func(cfg model.Config) bool { return true },
		build: func(cfg model.Config) (azcore.TokenCredential, error) {
			return azidentity.NewDefaultAzureCredential(nil)
		},
	},
}

// Resolve returns a credential usable against the management APIs, or an
// AuthenticationError when none can be constructed. Token acquisition
// itself happens lazily on first use.
func Resolve(cfg model.Config) (azcore.TokenCredential, error) {
	cred, name, err := resolveFrom(chain, cfg)
	if err != nil {
		return nil, &model.AuthenticationError{
			Err: fmt.Errorf("%s credential: %w", name, err),
		}
	}
	return cred, nil
}

// SelectedProvider reports which chain entry Resolve would pick for cfg.
func SelectedProvider(cfg model.Config) string {
	for _, p := range chain {
		if p.applies(cfg) {
			return p.name
		}
	}
	return ""
}

func resolveFrom(providers []provider, cfg model.Config) (azcore.TokenCredential, string, error) {
	for _, p := range providers {
		if !p.applies(cfg) {
			continue
		}
		cred, err := p.build(cfg)
		return cred, p.name, err
	}
	return nil, "", fmt.Errorf("no credential provider applies")
}
