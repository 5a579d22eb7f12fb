// Package render converts expense records into display tables. Server
// ordering is preserved; the renderer never sorts.
package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/frahmantamala/expense-dashboard/internal/expense"
	"github.com/shopspring/decimal"
)

const (
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiOrange = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Renderer produces the role-specific tables. Color toggles ANSI escapes for
// non-terminal output and tests.
type Renderer struct {
	Color bool
}

// FormatAmount renders an amount with a currency prefix and exactly two
// decimal places, whatever precision the server sent.
func FormatAmount(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// StatusText uppercases the status and applies the color mapping:
// approved is green, denied red, anything else (pending included) orange.
func (r Renderer) StatusText(status string) string {
	text := strings.ToUpper(status)
	if !r.Color {
		return text
	}
	switch status {
	case expense.StatusApproved:
		return ansiGreen + text + ansiReset
	case expense.StatusDenied:
		return ansiRed + text + ansiReset
	default:
		return ansiOrange + text + ansiReset
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// EmployeeTable renders the employee listing. Edit/delete affordances show
// only while an expense is still pending.
func (r Renderer) EmployeeTable(expenses []expense.Expense) string {
	if len(expenses) == 0 {
		return "No expenses found.\n"
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tAmount\tDescription\tStatus\tComment\tActions")
	for _, e := range expenses {
		actions := "-"
		if e.Editable() {
			actions = fmt.Sprintf("edit %d | delete %d", e.ID, e.ID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Date, FormatAmount(e.Amount), e.Description,
			r.StatusText(e.Status), orDash(e.Comment), actions)
	}
	w.Flush()
	return sb.String()
}

// PendingTable renders the manager review queue with a review affordance per
// row.
func (r Renderer) PendingTable(expenses []expense.Expense) string {
	if len(expenses) == 0 {
		return "No pending expenses found.\n"
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Employee\tDate\tAmount\tDescription\tActions")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s (ID: %d)\t%s\t%s\t%s\treview %d\n",
			e.Username, e.UserID, e.Date, FormatAmount(e.Amount),
			e.Description, e.ID)
	}
	w.Flush()
	return sb.String()
}

// AllTable renders the manager full listing with reviewer identity columns.
func (r Renderer) AllTable(expenses []expense.Expense, title string) string {
	if title == "" {
		title = "All Expenses"
	}
	if len(expenses) == 0 {
		return "No expenses found.\n"
	}

	var sb strings.Builder
	sb.WriteString(title + "\n")
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Employee\tDate\tAmount\tDescription\tStatus\tReviewer\tComment")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s (ID: %d)\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Username, e.UserID, e.Date, FormatAmount(e.Amount),
			e.Description, r.StatusText(e.Status),
			orDash(e.ReviewerUsername), orDash(e.Comment))
	}
	w.Flush()
	return sb.String()
}

// ReviewDetails renders the expense summary shown in the review modal.
func (r Renderer) ReviewDetails(e expense.Expense) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Employee:    %s\n", e.Username)
	fmt.Fprintf(&sb, "Date:        %s\n", e.Date)
	fmt.Fprintf(&sb, "Amount:      %s\n", FormatAmount(e.Amount))
	fmt.Fprintf(&sb, "Description: %s\n", e.Description)
	return sb.String()
}
