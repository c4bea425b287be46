package todos

import (
	"testing"
	"time"

	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestAddTrimsAndAppends(t *testing.T) {
	l := New(nil)
	item, err := l.Add("  buy milk  ", 10, now)
	require.NoError(t, err)
	require.Equal(t, Item{ID: 10, Text: "buy milk", CreatedAt: now}, item)

	_, err = l.Add("walk dog", 11, now)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 11}, []int64{l.Items()[0].ID, l.Items()[1].ID})
}

func TestAddWhitespaceIsRejected(t *testing.T) {
	l := New(nil)
	_, err := l.Add("   ", 1, now)
	require.ErrorIs(t, err, ErrEmptyText)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	require.Zero(t, l.Len())
}

func TestToggleAndDeleteUnknownAreNoops(t *testing.T) {
	l := New(nil)
	_, err := l.Add("a", 1, now)
	require.NoError(t, err)
	before := l.Items()

	_, ok := l.Toggle(99)
	require.False(t, ok)
	require.False(t, l.Delete(99))
	require.Equal(t, before, l.Items())
}

func TestToggleFlips(t *testing.T) {
	l := New(nil)
	_, _ = l.Add("a", 1, now)

	item, ok := l.Toggle(1)
	require.True(t, ok)
	require.True(t, item.Completed)

	item, _ = l.Toggle(1)
	require.False(t, item.Completed)
}

func TestDeleteKeepsOrder(t *testing.T) {
	l := New(nil)
	for i := int64(1); i <= 3; i++ {
		_, _ = l.Add("x", i, now)
	}
	require.True(t, l.Delete(2))
	items := l.Items()
	require.Len(t, items, 2)
	require.Equal(t, int64(1), items[0].ID)
	require.Equal(t, int64(3), items[1].ID)
	require.False(t, l.Delete(2))
	require.Equal(t, int64(3), l.MaxID())
}

func TestNewSkipsInvalidStoredItems(t *testing.T) {
	l := New([]Item{
		{ID: 1, Text: " keep "},
		{ID: 2, Text: "   "},
		{ID: 1, Text: "duplicate"},
	})
	require.Equal(t, []Item{{ID: 1, Text: "keep"}}, l.Items())
}
