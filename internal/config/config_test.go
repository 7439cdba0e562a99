package config

import (
	"os"
	"path/filepath"
	"testing"

	"edakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.5, cfg.Outlier.SkewThreshold)
	assert.Equal(t, 3.0, cfg.Outlier.BoundMultiplier)
	assert.Equal(t, DenominatorTotalRows, cfg.Outlier.Denominator)
	assert.Equal(t, 0.05, cfg.Significance.Alpha)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("EDA_SKEW_THRESHOLD", "0.8")
	t.Setenv("EDA_OUTLIER_DENOMINATOR", "non_missing")
	t.Setenv("EDA_PARALLELISM", "4")
	t.Setenv("EDA_REPORT_FORMAT", "HTML")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Outlier.SkewThreshold)
	assert.Equal(t, DenominatorNonMissing, cfg.Outlier.Denominator)
	assert.Equal(t, 4, cfg.Outlier.Parallelism)
	assert.Equal(t, "html", cfg.Report.Format)
}

func TestLoad_IgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("EDA_MIN_SAMPLE_SIZE", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Outlier.MinSampleSize)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"EDA_ALPHA":               "1.5",
		"EDA_OUTLIER_DENOMINATOR": "rows",
		"EDA_BOUND_MULTIPLIER":    "-1",
		"EDA_REPORT_FORMAT":       "pdf",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoadFile_ReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EDA_BOUND_MULTIPLIER=1.5\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("EDA_BOUND_MULTIPLIER") })

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Outlier.BoundMultiplier)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
