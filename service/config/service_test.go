package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service/keyvault"
)

type fakeSecrets struct {
	values map[string]string
	err    error
}

func (f fakeSecrets) GetSecret(ctx context.Context, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[name], nil
}

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{
		EnvSubscriptionID, EnvTenantID, EnvClientID, EnvClientSecret,
		EnvKeyVaultURL, EnvWorkspaceID, EnvCPUThreshold, EnvDiskAgeThreshold,
		EnvAnomalyThreshold, EnvAnomalyLookback, EnvOutputPath,
		EnvStartDate, EnvEndDate,
	} {
		t.Setenv(key, "")
	}

	cfg, err := loadEnv()
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.CPUThreshold)
	assert.Equal(t, 30, cfg.DiskAgeThresholdDays)
	assert.Equal(t, 50.0, cfg.AnomalyPercentageThreshold)
	assert.Equal(t, 7, cfg.AnomalyLookbackDays)
	assert.Equal(t, "artifacts/recommendations.json", cfg.OutputPath)

	assert.Equal(t, 8, cfg.WindowDays(), "default window spans the last 7 days plus today")
	assert.False(t, cfg.StartDate.After(cfg.EndDate))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvSubscriptionID, "sub-42")
	t.Setenv(EnvCPUThreshold, "12.5")
	t.Setenv(EnvDiskAgeThreshold, "90")
	t.Setenv(EnvAnomalyLookback, "3")
	t.Setenv(EnvStartDate, "2026-08-01")
	t.Setenv(EnvEndDate, "2026-08-07")

	cfg, err := loadEnv()
	require.NoError(t, err)

	assert.Equal(t, "sub-42", cfg.SubscriptionID)
	assert.Equal(t, 12.5, cfg.CPUThreshold)
	assert.Equal(t, 90, cfg.DiskAgeThresholdDays)
	assert.Equal(t, 3, cfg.AnomalyLookbackDays)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC), cfg.EndDate)
}

func TestLoadEnvRejectsMalformedDates(t *testing.T) {
	t.Setenv(EnvStartDate, "08/01/2026")

	_, err := loadEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvStartDate)
}

func TestLoadRejectsInvalidRangeBeforeVaultFetch(t *testing.T) {
	t.Setenv(EnvStartDate, "2026-08-10")
	t.Setenv(EnvEndDate, "2026-08-01")
	t.Setenv(EnvKeyVaultURL, "https://127.0.0.1:1/")

	_, warnings, err := Load(context.Background())

	var rangeErr *model.InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Empty(t, warnings, "no vault fetch may be attempted for an inverted window")
}

func TestApplyVaultOverrides(t *testing.T) {
	base, err := loadEnv()
	require.NoError(t, err)
	base.ClientSecret = "env-secret"

	t.Run("vault values win over environment", func(t *testing.T) {
		secrets := fakeSecrets{values: map[string]string{
			keyvault.SecretClientSecret: "vault-secret",
			keyvault.SecretWorkspaceID:  "vault-workspace",
		}}

		cfg, warnings := ApplyVaultOverrides(context.Background(), base, secrets)
		assert.Empty(t, warnings)
		assert.Equal(t, "vault-secret", cfg.ClientSecret)
		assert.Equal(t, "vault-workspace", cfg.WorkspaceID)
	})

	t.Run("empty vault values keep environment values", func(t *testing.T) {
		cfg, warnings := ApplyVaultOverrides(context.Background(), base, fakeSecrets{})
		assert.Empty(t, warnings)
		assert.Equal(t, "env-secret", cfg.ClientSecret)
	})

	t.Run("fetch failures degrade to warnings", func(t *testing.T) {
		secrets := fakeSecrets{err: errors.New("vault unreachable")}

		cfg, warnings := ApplyVaultOverrides(context.Background(), base, secrets)
		assert.Len(t, warnings, 2)
		assert.Equal(t, "env-secret", cfg.ClientSecret, "environment value survives")
	})
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	t.Run("empty uses fallback", func(t *testing.T) {
		got, err := parseDate("", fallback)
		require.NoError(t, err)
		assert.Equal(t, fallback, got)
	})

	t.Run("valid date parses as UTC", func(t *testing.T) {
		got, err := parseDate("2026-08-27", fallback)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("malformed date errors", func(t *testing.T) {
		_, err := parseDate("not-a-date", fallback)
		require.Error(t, err)
	})
}
