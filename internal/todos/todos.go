// Package todos implements the todo list kept next to the cart.
package todos

import (
	"strings"
	"time"

	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
)

// ErrEmptyText rejects todos whose text is blank after trimming.
var ErrEmptyText = pkgerrors.New(pkgerrors.CodeValidation, "todo text is required")

type Item struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// List keeps todos in insertion order.
type List struct {
	items []Item
}

// New restores a list, skipping items with blank text or a repeated id.
func New(items []Item) *List {
	l := &List{}
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		item.Text = text
		l.items = append(l.items, item)
	}
	return l
}

// Add appends a new incomplete todo. Blank text returns ErrEmptyText and
// leaves the list untouched.
func (l *List) Add(text string, id int64, now time.Time) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, ErrEmptyText.WithDetails(map[string]string{"text": "is required"})
	}
	item := Item{ID: id, Text: text, CreatedAt: now}
	l.items = append(l.items, item)
	return item, nil
}

// Toggle flips completion for id and reports whether the item exists.
func (l *List) Toggle(id int64) (Item, bool) {
	idx := l.index(id)
	if idx < 0 {
		return Item{}, false
	}
	l.items[idx].Completed = !l.items[idx].Completed
	return l.items[idx], true
}

// Delete removes id and reports whether it existed.
func (l *List) Delete(id int64) bool {
	idx := l.index(id)
	if idx < 0 {
		return false
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return true
}

// Items returns a copy in insertion order.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) Len() int { return len(l.items) }

func (l *List) Clear() { l.items = nil }

// MaxID returns the largest id in the list, or zero.
func (l *List) MaxID() int64 {
	var max int64
	for _, item := range l.items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max
}

func (l *List) index(id int64) int {
	for i, item := range l.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
