package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmoni/sysmoni/internal/errs"
)

func TestDefault_MatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, "cpu", cfg.Sort)
	assert.True(t, cfg.EnableGPU)
	assert.True(t, cfg.EnableBatt)
	assert.Equal(t, 10*time.Minute, cfg.Retention)
	assert.Equal(t, "C", cfg.TempUnit)
	assert.Equal(t, "byte", cfg.NetUnit)
	assert.True(t, cfg.CPUNormalized)
}

func TestBindFlags_OverridesDefaultsFromArgs(t *testing.T) {
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	err := fs.Parse([]string{
		"--interval=2s",
		"--sort=mem",
		"--gpu=false",
		"--tree",
		"--temperature-type=F",
	})
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, "mem", cfg.Sort)
	assert.False(t, cfg.EnableGPU)
	assert.True(t, cfg.TreeDefault)
	assert.Equal(t, "F", cfg.TempUnit)
}

func TestBindFlags_CurrentUsageOverridesCPUNormalized(t *testing.T) {
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	err := fs.Parse([]string{"--current-usage"})
	require.NoError(t, err)

	assert.True(t, cfg.CPUCurrentUsage)
	assert.True(t, cfg.CPUNormalized) // unchanged; resolved at collector-options time
}

func TestApplyEnvOverrides_ParsesDurationAndBools(t *testing.T) {
	cfg := Default()
	os.Setenv("SRPS_SYSMONI_INTERVAL", "5")
	os.Setenv("SRPS_SYSMONI_GPU", "0")
	os.Setenv("SRPS_SYSMONI_BATT", "0")
	os.Setenv("SRPS_SYSMONI_RETENTION", "1m")
	defer func() {
		os.Unsetenv("SRPS_SYSMONI_INTERVAL")
		os.Unsetenv("SRPS_SYSMONI_GPU")
		os.Unsetenv("SRPS_SYSMONI_BATT")
		os.Unsetenv("SRPS_SYSMONI_RETENTION")
	}()

	cfg.ApplyEnvOverrides()

	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.False(t, cfg.EnableGPU)
	assert.False(t, cfg.EnableBatt)
	assert.Equal(t, time.Minute, cfg.Retention)
}

func TestApplyEnvOverrides_LeavesDefaultsWhenUnset(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, Default(), cfg)
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_RejectsNonPositiveInterval(t *testing.T) {
	cfg := Default()
	cfg.Interval = 0
	assert.ErrorIs(t, cfg.Validate(), errs.ErrConfigInvalid)
}

func TestValidate_RejectsUnknownTempUnit(t *testing.T) {
	cfg := Default()
	cfg.TempUnit = "X"
	assert.ErrorIs(t, cfg.Validate(), errs.ErrConfigInvalid)
}

func TestValidate_RejectsUnknownNetScale(t *testing.T) {
	cfg := Default()
	cfg.NetScale = "exponential"
	assert.ErrorIs(t, cfg.Validate(), errs.ErrConfigInvalid)
}
