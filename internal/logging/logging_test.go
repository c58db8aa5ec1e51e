package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shopkeep.log")
	log, closer, err := New(path, "debug")
	require.NoError(t, err)

	log.WithField("count", 3).Debug("loaded products")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Equal(t, "loaded products", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopkeep.log")
	log, closer, err := New(path, "warn")
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}

func TestNewEmptyPathDiscards(t *testing.T) {
	log, closer, err := New("", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, closer, err := New("", "loud")
	assert.Error(t, err)
	assert.NotNil(t, closer)
}
