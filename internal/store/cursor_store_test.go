package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorStore(t *testing.T) {
	ctx := context.Background()

	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		tx.Rollback()
	})

	cursorStore := NewCursorStore(tx)

	t.Run("get non-existent cursor returns 0", func(t *testing.T) {
		cursor, err := cursorStore.GetReceiptCursor(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), cursor)
	})

	t.Run("set and get cursor", func(t *testing.T) {
		err := cursorStore.SetReceiptCursor(ctx, 12345)
		require.NoError(t, err)

		cursor, err := cursorStore.GetReceiptCursor(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(12345), cursor)
	})

	t.Run("update existing cursor", func(t *testing.T) {
		err := cursorStore.SetReceiptCursor(ctx, 200)
		require.NoError(t, err)

		cursor, err := cursorStore.GetReceiptCursor(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(200), cursor)
	})
}
