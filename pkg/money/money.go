// Package money renders yen amounts for display.
package money

import (
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	"golang.org/x/text/message"
)

// Format renders a yen amount with grouping, e.g. ¥89,800.
func Format(amount int64, lang enums.Language) string {
	printer := message.NewPrinter(lang.Tag())
	if amount < 0 {
		return printer.Sprintf("-¥%d", -amount)
	}
	return printer.Sprintf("¥%d", amount)
}
