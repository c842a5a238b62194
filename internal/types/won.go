// README: Won amount formatting shared by explanation strings and handlers.
package types

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon renders an amount with digit grouping, e.g. 145000 -> "145,000".
func FormatWon(amount int64) string {
	return wonPrinter.Sprintf("%d", amount)
}
