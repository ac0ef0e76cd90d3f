package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	const id = "6f1e7a2c-9f1b-4c2e-8f3a-0b1c2d3e4f5a"

	path := ObjectPath(id, "business_registration", "사업자등록증.pdf")
	assert.True(t, strings.HasPrefix(path, id+"/business_registration-"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	// No extension falls back to .bin.
	path = ObjectPath(id, "settlement", "scan")
	assert.True(t, strings.HasSuffix(path, ".bin"))

	// Trailing dot also falls back.
	path = ObjectPath(id, "settlement", "scan.")
	assert.True(t, strings.HasSuffix(path, ".bin"))
}

func TestLocalBlobStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalBlobStore(dir, "/uploads/")

	url, err := store.Upload(context.Background(), "req-1/bankbook-123.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/req-1/bankbook-123.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "req-1", "bankbook-123.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
}
