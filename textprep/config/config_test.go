package config

import (
	"os"
	"path/filepath"
	"testing"

	internal "github.com/feldspar-ai/textprep/textprep"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	// Save original directory
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	// Create temporary directory for testing
	tempDir, err := os.MkdirTemp("", "textprep-config-test-*")
	require.NoError(suite.T(), err)
	suite.tempDir = tempDir

	// Change to temp directory
	err = os.Chdir(tempDir)
	require.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TearDownTest() {
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	// Load config without config file (should use defaults)
	cfg, err := LoadConfig("")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), internal.DefaultLanguage, cfg.Prep.Language)
	assert.Equal(suite.T(), internal.DefaultVectorizerMode, cfg.Prep.VectorizerMode)
	assert.Equal(suite.T(), internal.DefaultBatchSize, cfg.Prep.BatchSize)
	assert.True(suite.T(), cfg.Prep.Shuffle)
	assert.True(suite.T(), cfg.Prep.DropLast)
	assert.Equal(suite.T(), internal.DefaultDeviceName, cfg.Prep.Device)
	assert.Equal(suite.T(), internal.DefaultWorkers, cfg.Prep.Workers)
	assert.Equal(suite.T(), int64(0), cfg.Prep.SplitSeed)
	assert.Equal(suite.T(), internal.DefaultSeqLenGuard, cfg.Prep.MaxSeqLenGuard)
	assert.Equal(suite.T(), internal.DefaultCappedSeqLen, cfg.Prep.CappedSeqLen)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	configContent := `
prep:
  dataPath: "./reviews.csv"
  language: "english"
  vectorizerMode: "sequence"
  batchSize: 64
  shuffle: false
  dropLast: false
  device: "onnx"
  workers: 8
  splitSeed: 1337
  maxSeqLenGuard: 2000
  cappedSeqLen: 512
`

	configFile := filepath.Join(suite.tempDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0o644)
	require.NoError(suite.T(), err)

	cfg, err := LoadConfig(configFile)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "./reviews.csv", cfg.Prep.DataPath)
	assert.Equal(suite.T(), "sequence", cfg.Prep.VectorizerMode)
	assert.Equal(suite.T(), 64, cfg.Prep.BatchSize)
	assert.False(suite.T(), cfg.Prep.Shuffle)
	assert.False(suite.T(), cfg.Prep.DropLast)
	assert.Equal(suite.T(), "onnx", cfg.Prep.Device)
	assert.Equal(suite.T(), 8, cfg.Prep.Workers)
	assert.Equal(suite.T(), int64(1337), cfg.Prep.SplitSeed)
	assert.Equal(suite.T(), 2000, cfg.Prep.MaxSeqLenGuard)
	assert.Equal(suite.T(), 512, cfg.Prep.CappedSeqLen)
}
