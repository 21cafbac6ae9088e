package model

import "time"

// Granularity selects the time bucket for cost queries.
type Granularity string

const (
	GranularityDaily   Granularity = "Daily"
	GranularityMonthly Granularity = "Monthly"
)

// CostRecord is one row of billing data, normalized from the Cost
// Management query response. Never mutated after creation.
type CostRecord struct {
	ResourceID    string
	ResourceGroup string
	Date          time.Time
	Amount        float64
	Currency      string
}

// TagCost is cost aggregated over one distinct value of a tag.
type TagCost struct {
	TagValue string
	Amount   float64
	Currency string
}

// UsageRecord is an aggregated metric value for one resource over the
// analysis window.
type UsageRecord struct {
	ResourceID string
	AverageCPU float64
}

// VMRecord describes a virtual machine as listed from the compute API.
type VMRecord struct {
	ResourceID    string
	Name          string
	ResourceGroup string
	SKU           string
	Location      string
}

// DiskRecord describes a managed disk, including attachment state and age
// in whole days relative to the run time.
type DiskRecord struct {
	ResourceID    string
	Name          string
	ResourceGroup string
	Attached      bool
	AgeDays       int
	SizeGB        int32
	SKUName       string
}
