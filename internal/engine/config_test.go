package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine"
)

func TestDefaultConfigBuildsAnEngine(t *testing.T) {
	_, err := engine.New(engine.DefaultConfig(), nil, nil)
	assert.NoError(t, err)
}

func TestNewRejectsZeroBlendWeights(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Blend = engine.BlendWeights{}
	_, err := engine.New(cfg, nil, nil)
	assert.Error(t, err, "an all-zero blend is a configuration error, not a default")
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	content := `url:
  shorteners:
    - evil.link
call:
  home_calling_code: "44"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := engine.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"evil.link"}, cfg.URL.Shorteners)
	assert.Equal(t, "44", cfg.Call.HomeCallingCode)

	// Sections the file omits keep their shipped values.
	defaults := engine.DefaultConfig()
	assert.Equal(t, defaults.URL.RiskyTLDs, cfg.URL.RiskyTLDs)
	assert.Equal(t, defaults.Message.Keywords, cfg.Message.Keywords)
	assert.Equal(t, defaults.Blend, cfg.Blend)
	assert.Nil(t, cfg.CallTable)

	// The merged config still builds a working engine.
	eng, err := engine.New(cfg, nil, nil)
	require.NoError(t, err)

	a := eng.AnalyzeCall(domain.CallInput{
		PhoneNumber: "+1 555 123 9876",
		Duration:    120,
		Frequency:   1,
		TimeOfDay:   domain.TimeBusiness,
	})
	assert.True(t, a.Features.Active("is_international"), "home code moved to 44, so +1 reads as international")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := engine.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: [not a map"), 0o600))
	_, err := engine.LoadConfig(path)
	assert.Error(t, err)
}
