package config

// Environment keys read by the loader. Every key has a documented default;
// unset credential fields mean the default credential chain is used.
const (
	EnvSubscriptionID   = "AZURE_SUBSCRIPTION_ID"
	EnvTenantID         = "AZURE_TENANT_ID"
	EnvClientID         = "AZURE_CLIENT_ID"
	EnvClientSecret     = "AZURE_CLIENT_SECRET"
	EnvKeyVaultURL      = "KEY_VAULT_URL"
	EnvWorkspaceID      = "LOG_ANALYTICS_WORKSPACE_ID"
	EnvCPUThreshold     = "CPU_THRESHOLD"
	EnvDiskAgeThreshold = "DISK_AGE_THRESHOLD_DAYS"
	EnvAnomalyThreshold = "ANOMALY_PERCENTAGE_THRESHOLD"
	EnvAnomalyLookback  = "ANOMALY_LOOKBACK_DAYS"
	EnvOutputPath       = "OUTPUT_PATH"
	EnvStartDate        = "START_DATE"
	EnvEndDate          = "END_DATE"
)

const dateLayout = "2006-01-02"

const (
	defaultCPUThreshold     = 5.0
	defaultDiskAgeThreshold = 30
	defaultAnomalyThreshold = 50.0
	defaultAnomalyLookback  = 7
	defaultOutputPath       = "artifacts/recommendations.json"
	defaultWindowDays       = 7
)
