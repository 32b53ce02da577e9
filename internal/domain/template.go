package domain

import (
	"strconv"
	"strings"
	"time"
)

const dueDateLayout = "02/01/2006 15:04"

// RenderTemplate substitutes the recognized placeholder tokens in a
// message template with the client's data. Substitution is textual and
// unconditional; tokens are matched exactly (case-sensitive, no nesting,
// no escaping) and anything unrecognized is left verbatim.
func RenderTemplate(tpl string, c *Client, now time.Time) string {
	dueDate := "N/A"
	if c.DueDate != nil {
		dueDate = c.DueDate.Format(dueDateLayout)
	}
	amount := "N/A"
	if c.AmountPaid != nil {
		amount = formatAmount(*c.AmountPaid)
	}

	return strings.NewReplacer(
		"{name}", c.Name,
		"{phone}", c.Phone,
		"{email}", c.FirstEmail(),
		"{plan}", c.Subscription,
		"{dueDate}", dueDate,
		"{amount}", amount,
		"{status}", string(Classify(c.DueDate, now)),
	).Replace(tpl)
}

// formatAmount renders a paid amount as Brazilian currency, e.g. "R$ 49,90".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return "R$ " + strings.Replace(s, ".", ",", 1)
}
