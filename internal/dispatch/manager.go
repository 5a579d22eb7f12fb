package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/expense"
	"github.com/frahmantamala/expense-dashboard/internal/message"
	"github.com/frahmantamala/expense-dashboard/internal/sched"
	"github.com/frahmantamala/expense-dashboard/internal/view"
)

// ManagerAPI is the slice of the backend client the manager dashboard uses.
type ManagerAPI interface {
	AllExpenses(ctx context.Context) ([]expense.Expense, error)
	PendingExpenses(ctx context.Context) ([]expense.Expense, error)
	ExpensesByEmployee(ctx context.Context, employeeID int64) ([]expense.Expense, error)
	ApproveExpense(ctx context.Context, id int64, comment *string) error
	DenyExpense(ctx context.Context, id int64, comment *string) error
	Logout(ctx context.Context) error
}

// ReportGenerator is the slice of the report package the dashboard drives.
type ReportGenerator interface {
	All(ctx context.Context) (string, error)
	Pending(ctx context.Context) (string, error)
	ByEmployee(ctx context.Context, employeeID string) (string, error)
	ByCategory(ctx context.Context, category string) (string, error)
	DateRange(ctx context.Context, startDate, endDate string) (string, error)
}

type ManagerDeps struct {
	API            ManagerAPI
	Reports        ReportGenerator
	Views          *view.Controller
	ListMessages   *message.Region
	ReviewMessages *message.Region
	ReportMessages *message.Region
	Scheduler      sched.Scheduler
	// OnPending and OnAll receive freshly loaded lists for rendering.
	OnPending func([]expense.Expense)
	OnAll     func(expenses []expense.Expense, title string)
	// OnReviewOpen shows the review modal for one pending expense;
	// OnReviewClose hides it again.
	OnReviewOpen  func(expense.Expense)
	OnReviewClose func()
	OnLogout      func()
	Logger        *slog.Logger
}

type Manager struct {
	ManagerDeps

	mu       sync.Mutex
	reviewID *int64
	pending  []expense.Expense
}

func NewManager(deps ManagerDeps) *Manager {
	if deps.OnPending == nil {
		deps.OnPending = func([]expense.Expense) {}
	}
	if deps.OnAll == nil {
		deps.OnAll = func([]expense.Expense, string) {}
	}
	if deps.OnReviewOpen == nil {
		deps.OnReviewOpen = func(expense.Expense) {}
	}
	if deps.OnReviewClose == nil {
		deps.OnReviewClose = func() {}
	}
	if deps.OnLogout == nil {
		deps.OnLogout = func() {}
	}
	return &Manager{ManagerDeps: deps}
}

// Initialize enters the default post-authentication state: the pending queue,
// loaded.
func (d *Manager) Initialize(ctx context.Context) {
	d.ShowPending(ctx)
}

func (d *Manager) ShowPending(ctx context.Context) {
	if err := d.Views.ShowSection(view.SectionPending); err != nil {
		d.Logger.Error("failed to show pending section", "error", err)
		return
	}
	d.LoadPending(ctx)
}

func (d *Manager) ShowAll(ctx context.Context) {
	if err := d.Views.ShowSection(view.SectionAll); err != nil {
		d.Logger.Error("failed to show all-expenses section", "error", err)
		return
	}
	d.LoadAll(ctx)
}

func (d *Manager) ShowReports() {
	if err := d.Views.ShowSection(view.SectionReports); err != nil {
		d.Logger.Error("failed to show reports section", "error", err)
	}
}

// LoadPending refreshes the review queue. The loaded records also back the
// review modal lookups.
func (d *Manager) LoadPending(ctx context.Context) {
	expenses, err := d.API.PendingExpenses(ctx)
	if err != nil {
		d.Logger.Error("failed to load pending expenses", "error", err)
		d.ListMessages.Error(internal.FailureMessage(err, "Failed to load pending expenses"))
		return
	}

	d.mu.Lock()
	d.pending = expenses
	d.mu.Unlock()

	d.OnPending(expenses)
}

func (d *Manager) LoadAll(ctx context.Context) {
	expenses, err := d.API.AllExpenses(ctx)
	if err != nil {
		d.Logger.Error("failed to load expenses", "error", err)
		d.ListMessages.Error(internal.FailureMessage(err, "Failed to load expenses"))
		return
	}
	d.OnAll(expenses, "All Expenses")
}

// LoadByEmployee filters the all-expenses view to one employee. An empty id
// is ignored; a malformed one surfaces an error without a request.
func (d *Manager) LoadByEmployee(ctx context.Context, employeeID string) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return
	}
	id, err := strconv.ParseInt(employeeID, 10, 64)
	if err != nil {
		d.ListMessages.Error("Invalid employee ID")
		return
	}

	expenses, err := d.API.ExpensesByEmployee(ctx, id)
	if err != nil {
		d.Logger.Error("failed to load employee expenses", "error", err, "employee_id", id)
		d.ListMessages.Error(internal.FailureMessage(err, "Failed to load employee expenses"))
		return
	}
	d.OnAll(expenses, fmt.Sprintf("Employee %d Expenses", id))
}

// ClearEmployeeFilter returns the all-expenses view to the unfiltered list.
func (d *Manager) ClearEmployeeFilter(ctx context.Context) {
	d.LoadAll(ctx)
}

// OpenReview opens the review modal for one pending expense and records it as
// the current review target.
func (d *Manager) OpenReview(id int64) {
	d.mu.Lock()
	var target *expense.Expense
	for i := range d.pending {
		if d.pending[i].ID == id {
			target = &d.pending[i]
			break
		}
	}
	if target == nil {
		d.mu.Unlock()
		d.ListMessages.Error(fmt.Sprintf("Expense %d is not in the pending list", id))
		return
	}
	d.reviewID = &id
	record := *target
	d.mu.Unlock()

	d.ReviewMessages.Clear()
	d.OnReviewOpen(record)
}

// CloseReview dismisses the modal and clears the review target.
func (d *Manager) CloseReview() {
	d.mu.Lock()
	d.reviewID = nil
	d.mu.Unlock()
	d.OnReviewClose()
}

// CurrentReviewID returns the expense id open in the review modal, or false
// when the modal is closed.
func (d *Manager) CurrentReviewID() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.reviewID == nil {
		return 0, false
	}
	return *d.reviewID, true
}

// Approve posts an approval for the expense under review. On success the
// modal closes and the pending queue reloads after the fixed delay.
func (d *Manager) Approve(ctx context.Context, comment string) {
	d.decide(ctx, comment, "Expense approved successfully!", "Failed to approve expense", d.API.ApproveExpense)
}

// Deny posts a denial for the expense under review, same flow as Approve.
func (d *Manager) Deny(ctx context.Context, comment string) {
	d.decide(ctx, comment, "Expense denied successfully!", "Failed to deny expense", d.API.DenyExpense)
}

func (d *Manager) decide(ctx context.Context, comment, successMsg, failureMsg string, call func(context.Context, int64, *string) error) {
	id, ok := d.CurrentReviewID()
	if !ok {
		d.ReviewMessages.Error(internal.FailureMessage(internal.ErrNoExpenseSelected, "No expense selected"))
		return
	}

	var payload *string
	if trimmed := strings.TrimSpace(comment); trimmed != "" {
		payload = &trimmed
	}

	if err := call(ctx, id, payload); err != nil {
		d.Logger.Error("review decision failed", "error", err, "expense_id", id)
		d.ReviewMessages.Error(internal.FailureMessage(err, failureMsg))
		return
	}

	d.Logger.Info("expense reviewed", "expense_id", id)
	d.ReviewMessages.Success(successMsg)

	d.Scheduler.AfterFunc(ReviewCloseDelay, func() {
		d.CloseReview()
		d.LoadPending(context.Background())
	})
}

// GenerateAllReport downloads the full CSV report.
func (d *Manager) GenerateAllReport(ctx context.Context) {
	d.generate(func() (string, error) { return d.Reports.All(ctx) })
}

// GeneratePendingReport downloads the pending-only CSV report.
func (d *Manager) GeneratePendingReport(ctx context.Context) {
	d.generate(func() (string, error) { return d.Reports.Pending(ctx) })
}

// GenerateEmployeeReport downloads one employee's CSV report.
func (d *Manager) GenerateEmployeeReport(ctx context.Context, employeeID string) {
	d.generate(func() (string, error) { return d.Reports.ByEmployee(ctx, strings.TrimSpace(employeeID)) })
}

// GenerateCategoryReport downloads a category CSV report.
func (d *Manager) GenerateCategoryReport(ctx context.Context, category string) {
	d.generate(func() (string, error) { return d.Reports.ByCategory(ctx, strings.TrimSpace(category)) })
}

// GenerateDateRangeReport downloads a date-bounded CSV report.
func (d *Manager) GenerateDateRangeReport(ctx context.Context, startDate, endDate string) {
	d.generate(func() (string, error) { return d.Reports.DateRange(ctx, startDate, endDate) })
}

func (d *Manager) generate(run func() (string, error)) {
	path, err := run()
	if err != nil {
		d.ReportMessages.Error(internal.FailureMessage(err, "Failed to generate report"))
		return
	}
	d.Logger.Info("report generated", "file", path)
	d.ReportMessages.Success("Report generated successfully!")
}

// Logout notifies the server best-effort and always leaves the dashboard.
func (d *Manager) Logout(ctx context.Context) {
	if err := d.API.Logout(ctx); err != nil {
		d.Logger.Error("logout request failed", "error", err)
	}
	d.OnLogout()
}
