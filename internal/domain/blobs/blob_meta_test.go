//go:build unit
// +build unit

package blobs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobMeta_Validate(t *testing.T) {
	valid := func() *BlobMeta {
		return &BlobMeta{
			ID:              uuid.NewString(),
			DateTimeCreated: time.Now(),
			Owner:           "alice",
			Name:            "notes.txt",
			Size:            5,
			Blocks:          1,
			EncryptionKeyID: uuid.NewString(),
		}
	}

	assert.NoError(t, valid().Validate())

	empty := valid()
	empty.Size = 0
	empty.Blocks = 0
	assert.NoError(t, empty.Validate(), "empty payloads are valid blobs")

	tests := []struct {
		name   string
		mutate func(b *BlobMeta)
	}{
		{"InvalidID", func(b *BlobMeta) { b.ID = "123" }},
		{"EmptyName", func(b *BlobMeta) { b.Name = "" }},
		{"NegativeSize", func(b *BlobMeta) { b.Size = -1 }},
		{"NegativeBlocks", func(b *BlobMeta) { b.Blocks = -1 }},
		{"InvalidEncryptionKeyID", func(b *BlobMeta) { b.EncryptionKeyID = "key" }},
		{"InvalidOwner", func(b *BlobMeta) { b.Owner = "alice!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			err := b.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestBlobMetaQuery_Validate(t *testing.T) {
	assert.NoError(t, NewBlobMetaQuery().Validate())
	assert.NoError(t, (&BlobMetaQuery{Name: "notes", EncryptionKeyID: uuid.NewString(), Limit: 1, SortBy: "size", SortOrder: "asc"}).Validate())

	assert.Error(t, (&BlobMetaQuery{EncryptionKeyID: "nope"}).Validate())
	assert.Error(t, (&BlobMetaQuery{SortBy: "ciphertext"}).Validate())
	assert.Error(t, (&BlobMetaQuery{Offset: -3}).Validate())
}
