package options_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedcsv/options"
)

func TestParse(t *testing.T) {
	cfg, err := options.Parse([]byte(`
delimiter: ";"
quote: "'"
crlf: true
always_quote: true
reorder: true
ignore_unused_columns: true
ignore_ascii_case: true
`))
	require.NoError(t, err)

	assert.Equal(t, byte(';'), cfg.DelimiterByte())
	assert.Equal(t, byte('\''), cfg.QuoteByte())
	assert.True(t, cfg.CRLF)
	assert.True(t, cfg.AlwaysQuote)
	assert.True(t, cfg.Reorder)
	assert.True(t, cfg.IgnoreUnusedColumns)
	assert.True(t, cfg.IgnoreASCIICase)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := options.Parse([]byte(`reorder: true`))
	require.NoError(t, err)

	assert.Equal(t, byte(','), cfg.DelimiterByte())
	assert.Equal(t, byte('"'), cfg.QuoteByte())
	assert.False(t, cfg.CRLF)
	assert.False(t, cfg.IgnoreUnusedColumns)
}

func TestParseRejectsMultiCharKnobs(t *testing.T) {
	_, err := options.Parse([]byte(`delimiter: "ab"`))
	assert.Error(t, err)

	_, err = options.Parse([]byte(`quote: "''"`))
	assert.Error(t, err)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := options.Parse([]byte(`delimiter: [`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typedcsv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delimiter: \"|\"\nreorder: true\n"), 0o644))

	cfg, err := options.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('|'), cfg.DelimiterByte())
	assert.True(t, cfg.Reorder)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := options.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
