package keyvault

import (
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

type service struct {
	client *azsecrets.Client
}

// Secret names the loader asks the vault for. Values stored under these
// names override the environment-sourced fields of the same meaning.
const (
	SecretClientSecret = "client-secret"
	SecretWorkspaceID  = "workspace-id"
)
