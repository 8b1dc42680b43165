package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	original, had := os.LookupEnv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, original)
		} else {
			os.Unsetenv(key)
		}
	})
	if value == "" {
		os.Unsetenv(key)
	} else {
		os.Setenv(key, value)
	}
}

func TestLoadUsesDefaultsWhenNothingSet(t *testing.T) {
	withEnv(t, "GENFORGE_FITNESS", "")
	withEnv(t, "GENFORGE_TARGET", "")
	withEnv(t, "GENFORGE_THREADS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "enhanced", cfg.FitnessMode)
	assert.Equal(t, 0.9999999999, cfg.Target)
	assert.Equal(t, 0, cfg.Threads)
}

func TestLoadReadsFitnessModeFromEnv(t *testing.T) {
	withEnv(t, "GENFORGE_FITNESS", "ultra")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ultra", cfg.FitnessMode)
}

func TestLoadReadsNumericFieldsFromEnv(t *testing.T) {
	withEnv(t, "GENFORGE_TARGET", "0.95")
	withEnv(t, "GENFORGE_THREADS", "4")
	withEnv(t, "GENFORGE_TIME", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.95, cfg.Target)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, 30, cfg.TimeSeconds)
}

func TestLoadIgnoresMalformedNumericEnv(t *testing.T) {
	withEnv(t, "GENFORGE_THREADS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Threads)
}
