package config

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/credential"
	"github.com/elC0mpa/azure-optimizer/service/keyvault"
)

// Load builds the run configuration from environment variables and, when a
// vault URL is configured, from Key Vault overrides. Returned warnings are
// non-fatal degradations (e.g. the vault being unreachable); the run
// continues on environment values.
func Load(ctx context.Context) (model.Config, []string, error) {
	cfg, err := loadEnv()
	if err != nil {
		return model.Config{}, nil, err
	}

	// An inverted window must abort before any provider call, the vault
	// fetches below included.
	if cfg.StartDate.After(cfg.EndDate) {
		return model.Config{}, nil, &model.InvalidRangeError{Start: cfg.StartDate, End: cfg.EndDate}
	}

	if cfg.KeyVaultURL == "" {
		return cfg, nil, nil
	}

	cred, err := credential.Resolve(cfg)
	if err != nil {
		return cfg, []string{fmt.Sprintf("key vault skipped: %v", err)}, nil
	}
	secrets, err := keyvault.NewService(cfg.KeyVaultURL, cred)
	if err != nil {
		return cfg, []string{fmt.Sprintf("key vault skipped: %v", err)}, nil
	}

	cfg, warnings := ApplyVaultOverrides(ctx, cfg, secrets)
	return cfg, warnings, nil
}

// ApplyVaultOverrides fetches the named secrets and overrides the matching
// environment-sourced fields. Fetch failures degrade to warnings so local
// runs without a vault keep working.
func ApplyVaultOverrides(ctx context.Context, cfg model.Config, secrets service.SecretService) (model.Config, []string) {
	var warnings []string

	if v, err := secrets.GetSecret(ctx, keyvault.SecretClientSecret); err != nil {
		warnings = append(warnings, fmt.Sprintf("vault override %s: %v", keyvault.SecretClientSecret, err))
	} else if v != "" {
		cfg.ClientSecret = v
	}

	if v, err := secrets.GetSecret(ctx, keyvault.SecretWorkspaceID); err != nil {
		warnings = append(warnings, fmt.Sprintf("vault override %s: %v", keyvault.SecretWorkspaceID, err))
	} else if v != "" {
		cfg.WorkspaceID = v
	}

	return cfg, warnings
}

func loadEnv() (model.Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(EnvCPUThreshold, defaultCPUThreshold)
	v.SetDefault(EnvDiskAgeThreshold, defaultDiskAgeThreshold)
	v.SetDefault(EnvAnomalyThreshold, defaultAnomalyThreshold)
	v.SetDefault(EnvAnomalyLookback, defaultAnomalyLookback)
	v.SetDefault(EnvOutputPath, defaultOutputPath)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	start, err := parseDate(v.GetString(EnvStartDate), today.AddDate(0, 0, -defaultWindowDays))
	if err != nil {
		return model.Config{}, &model.ConfigurationError{Setting: EnvStartDate, Reason: err.Error()}
	}
	end, err := parseDate(v.GetString(EnvEndDate), today)
	if err != nil {
		return model.Config{}, &model.ConfigurationError{Setting: EnvEndDate, Reason: err.Error()}
	}

	return model.Config{
		SubscriptionID:             v.GetString(EnvSubscriptionID),
		TenantID:                   v.GetString(EnvTenantID),
		ClientID:                   v.GetString(EnvClientID),
		ClientSecret:               v.GetString(EnvClientSecret),
		KeyVaultURL:                v.GetString(EnvKeyVaultURL),
		WorkspaceID:                v.GetString(EnvWorkspaceID),
		CPUThreshold:               v.GetFloat64(EnvCPUThreshold),
		DiskAgeThresholdDays:       v.GetInt(EnvDiskAgeThreshold),
		AnomalyPercentageThreshold: v.GetFloat64(EnvAnomalyThreshold),
		AnomalyLookbackDays:        v.GetInt(EnvAnomalyLookback),
		OutputPath:                 v.GetString(EnvOutputPath),
		StartDate:                  start,
		EndDate:                    end,
	}, nil
}

func parseDate(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", raw)
	}
	return t.UTC(), nil
}
