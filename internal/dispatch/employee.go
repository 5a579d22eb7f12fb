// Package dispatch drives every user-initiated mutating action: build the
// request, await the result, surface a transient message, and trigger the
// follow-up view transition or reload. No action retries; each one is atomic
// from the client's perspective.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/expense"
	"github.com/frahmantamala/expense-dashboard/internal/message"
	"github.com/frahmantamala/expense-dashboard/internal/sched"
	"github.com/frahmantamala/expense-dashboard/internal/view"
	"github.com/shopspring/decimal"
)

// Fixed transition delays. Matching the delays users already know from the
// web dashboards.
const (
	SubmitNavigateDelay = 2000 * time.Millisecond
	UpdateNavigateDelay = 1500 * time.Millisecond
	ReviewCloseDelay    = 1500 * time.Millisecond
)

// EmployeeAPI is the slice of the backend client the employee dashboard uses.
type EmployeeAPI interface {
	SubmitExpense(ctx context.Context, dto expense.SubmitDTO) (*expense.Expense, error)
	ListExpenses(ctx context.Context, status string) ([]expense.Expense, error)
	GetExpense(ctx context.Context, id int64) (*expense.Expense, error)
	UpdateExpense(ctx context.Context, id int64, dto expense.SubmitDTO) (*expense.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	Logout(ctx context.Context) error
}

// EditForm holds the edit section's in-progress values, populated from the
// record being edited.
type EditForm struct {
	ExpenseID   int64
	Amount      string
	Description string
	Date        string
}

type EmployeeDeps struct {
	API            EmployeeAPI
	Views          *view.Controller
	SubmitMessages *message.Region
	EditMessages   *message.Region
	ListMessages   *message.Region
	Scheduler      sched.Scheduler
	// Confirm asks the user to confirm a destructive action. Returning false
	// aborts the action before any request is issued.
	Confirm func(prompt string) bool
	// OnList receives every freshly loaded expense list for rendering.
	OnList func([]expense.Expense)
	// OnLogout fires after logout, regardless of the server call's outcome.
	OnLogout func()
	Logger   *slog.Logger
}

type Employee struct {
	EmployeeDeps

	mu           sync.Mutex
	statusFilter string
	formDate     string
	editForm     EditForm
}

func NewEmployee(deps EmployeeDeps) *Employee {
	if deps.Confirm == nil {
		deps.Confirm = func(string) bool { return false }
	}
	if deps.OnList == nil {
		deps.OnList = func([]expense.Expense) {}
	}
	if deps.OnLogout == nil {
		deps.OnLogout = func() {}
	}
	return &Employee{
		EmployeeDeps: deps,
		formDate:     expense.Today(),
	}
}

// Initialize enters the default post-authentication state: the listing
// section, with a load triggered.
func (d *Employee) Initialize(ctx context.Context) {
	d.mu.Lock()
	d.formDate = expense.Today()
	d.mu.Unlock()
	d.ShowExpenses(ctx)
}

// ShowSubmit navigates to the submit form.
func (d *Employee) ShowSubmit() {
	if err := d.Views.ShowSection(view.SectionSubmit); err != nil {
		d.Logger.Error("failed to show submit section", "error", err)
	}
}

// ShowExpenses navigates to the listing and reloads it.
func (d *Employee) ShowExpenses(ctx context.Context) {
	if err := d.Views.ShowSection(view.SectionExpenses); err != nil {
		d.Logger.Error("failed to show expenses section", "error", err)
		return
	}
	d.LoadExpenses(ctx)
}

// CancelSubmit abandons the submit form: fields reset, the date re-defaults
// to today, and the listing comes back.
func (d *Employee) CancelSubmit(ctx context.Context) {
	d.mu.Lock()
	d.formDate = expense.Today()
	d.mu.Unlock()
	d.ShowExpenses(ctx)
}

// CancelEdit abandons the edit form and returns to the listing.
func (d *Employee) CancelEdit(ctx context.Context) {
	d.mu.Lock()
	d.editForm = EditForm{}
	d.mu.Unlock()
	d.ShowExpenses(ctx)
}

// SetStatusFilter changes the listing filter and reloads immediately.
func (d *Employee) SetStatusFilter(ctx context.Context, status string) {
	d.mu.Lock()
	d.statusFilter = status
	d.mu.Unlock()
	d.LoadExpenses(ctx)
}

func (d *Employee) StatusFilter() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statusFilter
}

// FormDate returns the submit form's current default date.
func (d *Employee) FormDate() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.formDate
}

// LoadExpenses fetches the employee's expenses through the current filter and
// hands them to the render sink.
func (d *Employee) LoadExpenses(ctx context.Context) {
	d.mu.Lock()
	filter := d.statusFilter
	d.mu.Unlock()

	expenses, err := d.API.ListExpenses(ctx, filter)
	if err != nil {
		d.Logger.Error("failed to load expenses", "error", err)
		d.ListMessages.Error(internal.FailureMessage(err, "Failed to load expenses"))
		return
	}
	d.OnList(expenses)
}

// Submit coerces the form fields, posts the expense, and on success resets
// the form and auto-navigates back to the listing after a fixed delay.
func (d *Employee) Submit(ctx context.Context, amountRaw, description, date string) {
	dto, err := expense.NewSubmitDTO(amountRaw, description, date)
	if err != nil {
		d.Logger.Warn("submit rejected before request", "error", err)
		d.SubmitMessages.Error(internal.FailureMessage(err, "Failed to submit expense"))
		return
	}

	created, err := d.API.SubmitExpense(ctx, dto)
	if err != nil {
		d.SubmitMessages.Error(internal.FailureMessage(err, "Failed to submit expense"))
		return
	}

	d.Logger.Info("expense submitted", "expense_id", created.ID, "amount", created.Amount)
	d.SubmitMessages.Success("Expense submitted successfully!")

	d.mu.Lock()
	d.formDate = expense.Today()
	d.mu.Unlock()

	d.Scheduler.AfterFunc(SubmitNavigateDelay, func() {
		d.ShowExpenses(context.Background())
	})
}

// EditLoad fetches one record, fills the edit form, and switches to the edit
// section.
func (d *Employee) EditLoad(ctx context.Context, id int64) {
	record, err := d.API.GetExpense(ctx, id)
	if err != nil {
		d.Logger.Error("failed to load expense for editing", "error", err, "expense_id", id)
		d.ListMessages.Error(internal.FailureMessage(err, "Failed to load expense details"))
		return
	}

	d.mu.Lock()
	d.editForm = EditForm{
		ExpenseID:   record.ID,
		Amount:      formAmount(record.Amount),
		Description: record.Description,
		Date:        record.Date,
	}
	d.mu.Unlock()

	if err := d.Views.ShowSection(view.SectionEdit); err != nil {
		d.Logger.Error("failed to show edit section", "error", err)
	}
}

// CurrentEditForm returns a snapshot of the populated edit form.
func (d *Employee) CurrentEditForm() EditForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editForm
}

// Update puts the edited fields and on success auto-navigates back to the
// listing after a fixed delay.
func (d *Employee) Update(ctx context.Context, amountRaw, description, date string) {
	d.mu.Lock()
	id := d.editForm.ExpenseID
	d.mu.Unlock()

	dto, err := expense.NewSubmitDTO(amountRaw, description, date)
	if err != nil {
		d.Logger.Warn("update rejected before request", "error", err)
		d.EditMessages.Error(internal.FailureMessage(err, "Failed to update expense"))
		return
	}

	if _, err := d.API.UpdateExpense(ctx, id, dto); err != nil {
		d.EditMessages.Error(internal.FailureMessage(err, "Failed to update expense"))
		return
	}

	d.Logger.Info("expense updated", "expense_id", id)
	d.EditMessages.Success("Expense updated successfully!")

	d.Scheduler.AfterFunc(UpdateNavigateDelay, func() {
		d.ShowExpenses(context.Background())
	})
}

// Delete asks for confirmation first; without it, no request is issued at
// all. On success the listing reloads immediately.
func (d *Employee) Delete(ctx context.Context, id int64) {
	if !d.Confirm("Are you sure you want to delete this expense?") {
		return
	}

	if err := d.API.DeleteExpense(ctx, id); err != nil {
		d.ListMessages.Error(internal.FailureMessage(err, "Failed to delete expense"))
		return
	}

	d.Logger.Info("expense deleted", "expense_id", id)
	d.ListMessages.Success("Expense deleted successfully!")
	d.LoadExpenses(ctx)
}

// Logout notifies the server best-effort and always hands control back to the
// login screen. A failed request never blocks leaving.
func (d *Employee) Logout(ctx context.Context) {
	if err := d.API.Logout(ctx); err != nil {
		d.Logger.Error("logout request failed", "error", err)
	}
	d.OnLogout()
}

// formAmount renders a loaded amount back into an editable text field.
func formAmount(amount float64) string {
	return decimal.NewFromFloat(amount).String()
}
