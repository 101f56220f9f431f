package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFilter(t *testing.T) {
	limits := DefaultFileLimits()

	t.Run("accepts allowed documents in order", func(t *testing.T) {
		files := []FileRef{
			{Name: "estimate.xlsx", Size: 1024, MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
			{Name: "site.jpg", Size: 2048, MimeType: "image/jpeg"},
		}
		accepted, rejected := limits.Filter(files)
		require.Len(t, accepted, 2)
		assert.Empty(t, rejected)
		assert.Equal(t, "estimate.xlsx", accepted[0].Name)
		assert.Equal(t, "site.jpg", accepted[1].Name)
	})

	t.Run("drops oversized files with reason", func(t *testing.T) {
		files := []FileRef{
			{Name: "big.pdf", Size: 11 * 1024 * 1024, MimeType: "application/pdf"},
			{Name: "ok.pdf", Size: 1024, MimeType: "application/pdf"},
		}
		accepted, rejected := limits.Filter(files)
		require.Len(t, accepted, 1)
		assert.Equal(t, "ok.pdf", accepted[0].Name)
		require.Len(t, rejected, 1)
		assert.Equal(t, "big.pdf", rejected[0].Name)
		assert.Equal(t, "file exceeds size limit", rejected[0].Reason)
	})

	t.Run("drops disallowed types with reason", func(t *testing.T) {
		files := []FileRef{
			{Name: "payload.exe", Size: 512, MimeType: "application/octet-stream"},
		}
		accepted, rejected := limits.Filter(files)
		assert.Empty(t, accepted)
		require.Len(t, rejected, 1)
		assert.Equal(t, "file type not allowed", rejected[0].Reason)
	})

	t.Run("enforces the file count limit", func(t *testing.T) {
		var files []FileRef
		for i := 0; i < 12; i++ {
			files = append(files, FileRef{
				Name:     fmt.Sprintf("doc_%d.pdf", i),
				Size:     1024,
				MimeType: "application/pdf",
			})
		}
		accepted, rejected := limits.Filter(files)
		assert.Len(t, accepted, 10)
		require.Len(t, rejected, 2)
		assert.Equal(t, "file count limit reached", rejected[0].Reason)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		accepted, rejected := limits.Filter(nil)
		assert.Empty(t, accepted)
		assert.Empty(t, rejected)
	})
}

func TestFileAccepts(t *testing.T) {
	limits := DefaultFileLimits()

	assert.True(t, limits.Accepts(FileRef{Name: "a.pdf", Size: 1024, MimeType: "application/pdf"}))
	assert.False(t, limits.Accepts(FileRef{Name: "a.pdf", Size: 20 * 1024 * 1024, MimeType: "application/pdf"}))
	assert.False(t, limits.Accepts(FileRef{Name: "a.zip", Size: 1024, MimeType: "application/zip"}))
}
