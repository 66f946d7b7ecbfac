package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

// receiptCursorKey is the key-value entry holding the relay's last published cursor
const receiptCursorKey = "receipt_cursor"

// CursorStore defines the interface for storing and retrieving the relay's receipt cursor
//
//go:generate mockgen -source=cursor_store.go -destination=../mocks/cursor_store.go -package=mocks -mock_names=CursorStore=MockCursorStore
type CursorStore interface {
	// GetReceiptCursor retrieves the cursor of the last published receipt
	GetReceiptCursor(ctx context.Context) (int64, error)
	// SetReceiptCursor stores the cursor of the last published receipt
	SetReceiptCursor(ctx context.Context, cursor int64) error
}

type cursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a new cursor store
func NewCursorStore(db *gorm.DB) CursorStore {
	return &cursorStore{db: db}
}

// GetReceiptCursor retrieves the cursor of the last published receipt
func (s *cursorStore) GetReceiptCursor(ctx context.Context) (int64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", receiptCursorKey).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get receipt cursor: %w", err)
	}

	cursor, err := strconv.ParseInt(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse receipt cursor: %w", err)
	}

	return cursor, nil
}

// SetReceiptCursor stores the cursor of the last published receipt
func (s *cursorStore) SetReceiptCursor(ctx context.Context, cursor int64) error {
	kv := schema.KeyValueStore{
		Key:   receiptCursorKey,
		Value: strconv.FormatInt(cursor, 10),
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set receipt cursor: %w", err)
	}

	return nil
}
