package model

import "math"

// UnboundedPercentage marks a cost spike measured against a zero baseline,
// where a finite percentage increase is undefined.
const UnboundedPercentage = math.MaxFloat64

// The JSON tags on the recommendation and report types are the output
// compatibility contract and must not change.

// IdleVM flags a virtual machine whose average CPU stayed below the
// configured threshold for the whole analysis window.
type IdleVM struct {
	ResourceID       string   `json:"resourceId"`
	AverageCPU       float64  `json:"averageCpu"`
	EstimatedSavings *float64 `json:"estimatedSavings"`
}

// SKUResize suggests moving an underutilized VM to a smaller SKU in the
// same family.
type SKUResize struct {
	ResourceID       string   `json:"resourceId"`
	CurrentSKU       string   `json:"currentSku"`
	SuggestedSKU     string   `json:"suggestedSku"`
	EstimatedSavings *float64 `json:"estimatedSavings"`
}

// OrphanedDisk flags a managed disk that is unattached and older than the
// configured age threshold.
type OrphanedDisk struct {
	DiskName         string   `json:"diskName"`
	ResourceGroup    string   `json:"resourceGroup"`
	AgeDays          int      `json:"ageDays"`
	SizeGB           int32    `json:"sizeGB"`
	SKUName          string   `json:"skuName"`
	EstimatedSavings *float64 `json:"estimatedSavings"`
}

// CostAnomaly flags a day whose spend deviates from the trailing baseline
// by at least the configured percentage.
type CostAnomaly struct {
	Date               string   `json:"date"`
	Cost               float64  `json:"cost"`
	Baseline           float64  `json:"baseline"`
	PercentageIncrease float64  `json:"percentageIncrease"`
	ResourceGroups     []string `json:"resourceGroups"`
}

// TimePeriod is the analysis window echoed into report metadata.
type TimePeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Thresholds echoes the heuristic thresholds the run was executed with.
type Thresholds struct {
	CPUThreshold               float64 `json:"cpu_threshold"`
	DiskAgeThresholdDays       int     `json:"disk_age_threshold_days"`
	AnomalyPercentageThreshold float64 `json:"anomaly_percentage_threshold"`
}

// Metadata identifies the subscription and parameters of the run.
type Metadata struct {
	SubscriptionID string     `json:"subscription_id"`
	TimePeriod     TimePeriod `json:"time_period"`
	Thresholds     Thresholds `json:"thresholds"`
}

// Summary holds report-level totals. TotalEstimatedSavings treats omitted
// per-item estimates as zero; the items keep their null state.
type Summary struct {
	TotalRecommendations  int     `json:"totalRecommendations"`
	TotalEstimatedSavings float64 `json:"totalEstimatedSavings"`
}

// Report is the single persisted artifact of a run.
type Report struct {
	Timestamp     string         `json:"timestamp"`
	Metadata      Metadata       `json:"metadata"`
	IdleVMs       []IdleVM       `json:"idleVMs"`
	SKUResizes    []SKUResize    `json:"skuResizes"`
	OrphanedDisks []OrphanedDisk `json:"orphanedDisks"`
	CostAnomalies []CostAnomaly  `json:"costAnomalies"`
	Summary       Summary        `json:"summary"`
}
