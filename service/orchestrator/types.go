package orchestrator

import (
	"context"

	"github.com/elC0mpa/azure-optimizer/model"
)

type OrchestratorService interface {
	Run(ctx context.Context) (*model.Report, []string, error)
}
