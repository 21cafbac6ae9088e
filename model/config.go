package model

import "time"

// RedactedMask replaces secret values in the redacted configuration view.
// Fields are masked wholesale, never by substring, so a secret can never
// leak through a partial match.
const RedactedMask = "[REDACTED]"

// Config holds every run parameter. It is built once at the entry boundary
// (environment, flags, optional Key Vault overrides) and is immutable for
// the rest of the run.
type Config struct {
	SubscriptionID string
	TenantID       string
	ClientID       string
	ClientSecret   string

	KeyVaultURL string
	WorkspaceID string

	CPUThreshold               float64
	DiskAgeThresholdDays       int
	AnomalyPercentageThreshold float64
	AnomalyLookbackDays        int

	OutputPath string
	StartDate  time.Time
	EndDate    time.Time
}

// HasServicePrincipal reports whether all three application credential
// fields are present.
func (c Config) HasServicePrincipal() bool {
	return c.ClientID != "" && c.TenantID != "" && c.ClientSecret != ""
}

// WindowDays returns the analysis window length in days, inclusive of both
// endpoints.
func (c Config) WindowDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
}

// Validate checks the invariants that must hold before any provider call.
func (c Config) Validate() error {
	if c.StartDate.After(c.EndDate) {
		return &InvalidRangeError{Start: c.StartDate, End: c.EndDate}
	}
	if c.CPUThreshold < 0 {
		return &ConfigurationError{Setting: "CPU_THRESHOLD", Reason: "must be non-negative"}
	}
	if c.DiskAgeThresholdDays < 0 {
		return &ConfigurationError{Setting: "DISK_AGE_THRESHOLD_DAYS", Reason: "must be non-negative"}
	}
	if c.AnomalyPercentageThreshold < 0 {
		return &ConfigurationError{Setting: "ANOMALY_PERCENTAGE_THRESHOLD", Reason: "must be non-negative"}
	}
	if c.AnomalyLookbackDays < 1 {
		return &ConfigurationError{Setting: "ANOMALY_LOOKBACK_DAYS", Reason: "must be at least 1"}
	}
	if c.OutputPath == "" {
		return &ConfigurationError{Setting: "OUTPUT_PATH", Reason: "must not be empty"}
	}
	return nil
}

// Redacted returns a view of the configuration safe for logging.
func (c Config) Redacted() map[string]any {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return RedactedMask
	}

	return map[string]any{
		"subscription_id":              c.SubscriptionID,
		"tenant_id":                    c.TenantID,
		"client_id":                    c.ClientID,
		"client_secret":                mask(c.ClientSecret),
		"key_vault_url":                c.KeyVaultURL,
		"log_analytics_workspace_id":   mask(c.WorkspaceID),
		"cpu_threshold":                c.CPUThreshold,
		"disk_age_threshold_days":      c.DiskAgeThresholdDays,
		"anomaly_percentage_threshold": c.AnomalyPercentageThreshold,
		"anomaly_lookback_days":        c.AnomalyLookbackDays,
		"output_path":                  c.OutputPath,
		"start_date":                   c.StartDate.Format("2006-01-02"),
		"end_date":                     c.EndDate.Format("2006-01-02"),
	}
}
