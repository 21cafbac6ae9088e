package credential

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/elC0mpa/azure-optimizer/model"
)

// provider is one entry in the ordered credential chain. The first provider
// whose applies func returns true is the one used.
type provider struct {
	name    string
	applies func(cfg model.Config) bool
	build   func(cfg model.Config) (azcore.TokenCredential, error)
}
