package report

import (
	"time"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service/optimizer"
)

type ReportService interface {
	Assemble(result optimizer.Result, now time.Time) *model.Report
	Write(report *model.Report, path string) error
}
