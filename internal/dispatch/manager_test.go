package dispatch_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/dispatch"
	"github.com/frahmantamala/expense-dashboard/internal/expense"
	"github.com/frahmantamala/expense-dashboard/internal/message"
	"github.com/frahmantamala/expense-dashboard/internal/sched"
	"github.com/frahmantamala/expense-dashboard/internal/view"
)

type reviewCall struct {
	ID      int64
	Comment *string
}

type mockManagerAPI struct {
	allCalls     int
	pendingCalls int
	byEmployee   []int64
	approveCalls []reviewCall
	denyCalls    []reviewCall
	logoutCalls  int

	allErr     error
	pendingErr error
	approveErr error

	allResult     []expense.Expense
	pendingResult []expense.Expense
}

func (m *mockManagerAPI) AllExpenses(ctx context.Context) ([]expense.Expense, error) {
	m.allCalls++
	if m.allErr != nil {
		return nil, m.allErr
	}
	return m.allResult, nil
}

func (m *mockManagerAPI) PendingExpenses(ctx context.Context) ([]expense.Expense, error) {
	m.pendingCalls++
	if m.pendingErr != nil {
		return nil, m.pendingErr
	}
	return m.pendingResult, nil
}

func (m *mockManagerAPI) ExpensesByEmployee(ctx context.Context, employeeID int64) ([]expense.Expense, error) {
	m.byEmployee = append(m.byEmployee, employeeID)
	return m.allResult, nil
}

func (m *mockManagerAPI) ApproveExpense(ctx context.Context, id int64, comment *string) error {
	m.approveCalls = append(m.approveCalls, reviewCall{ID: id, Comment: comment})
	return m.approveErr
}

func (m *mockManagerAPI) DenyExpense(ctx context.Context, id int64, comment *string) error {
	m.denyCalls = append(m.denyCalls, reviewCall{ID: id, Comment: comment})
	return nil
}

func (m *mockManagerAPI) Logout(ctx context.Context) error {
	m.logoutCalls++
	return nil
}

type mockReports struct {
	calls []string
	err   error
}

func (m *mockReports) All(ctx context.Context) (string, error) {
	m.calls = append(m.calls, "all")
	return "all_expenses_report.csv", m.err
}

func (m *mockReports) Pending(ctx context.Context) (string, error) {
	m.calls = append(m.calls, "pending")
	return "pending_expenses_report.csv", m.err
}

func (m *mockReports) ByEmployee(ctx context.Context, employeeID string) (string, error) {
	m.calls = append(m.calls, "employee:"+employeeID)
	return "employee_" + employeeID + "_expenses_report.csv", m.err
}

func (m *mockReports) ByCategory(ctx context.Context, category string) (string, error) {
	m.calls = append(m.calls, "category:"+category)
	return "category_" + category + "_expenses_report.csv", m.err
}

func (m *mockReports) DateRange(ctx context.Context, startDate, endDate string) (string, error) {
	m.calls = append(m.calls, "range:"+startDate+".."+endDate)
	return "expenses_report_" + startDate + "_to_" + endDate + ".csv", m.err
}

var _ = Describe("Manager dispatcher", func() {
	var (
		apiMock    *mockManagerAPI
		reports    *mockReports
		views      *view.Controller
		clock      *sched.Manual
		listMsgs   *message.Region
		reviewMsgs *message.Region
		reportMsgs *message.Region
		opened     []expense.Expense
		closed     int
		allTitles  []string
		d          *dispatch.Manager
		ctx        context.Context
	)

	BeforeEach(func() {
		apiMock = &mockManagerAPI{}
		reports = &mockReports{}
		views = view.ManagerSections(testLogger())
		clock = sched.NewManual()
		listMsgs = message.NewRegion(clock, nil)
		reviewMsgs = message.NewRegion(clock, nil)
		reportMsgs = message.NewRegion(clock, nil)
		opened = nil
		closed = 0
		allTitles = nil
		ctx = context.Background()

		d = dispatch.NewManager(dispatch.ManagerDeps{
			API:            apiMock,
			Reports:        reports,
			Views:          views,
			ListMessages:   listMsgs,
			ReviewMessages: reviewMsgs,
			ReportMessages: reportMsgs,
			Scheduler:      clock,
			OnAll:          func(_ []expense.Expense, title string) { allTitles = append(allTitles, title) },
			OnReviewOpen:   func(e expense.Expense) { opened = append(opened, e) },
			OnReviewClose:  func() { closed++ },
			Logger:         testLogger(),
		})
	})

	Describe("Initialize", func() {
		It("enters the pending queue and loads it", func() {
			d.Initialize(ctx)

			visible, _ := views.Visible()
			Expect(visible).To(Equal(view.SectionPending))
			Expect(apiMock.pendingCalls).To(Equal(1))
		})
	})

	Describe("employee filter", func() {
		It("ignores an empty id without a request", func() {
			d.LoadByEmployee(ctx, "   ")
			Expect(apiMock.byEmployee).To(BeEmpty())
			Expect(listMsgs.Current()).To(BeNil())
		})

		It("rejects a malformed id without a request", func() {
			d.LoadByEmployee(ctx, "abc")
			Expect(apiMock.byEmployee).To(BeEmpty())
			Expect(listMsgs.Current().Text).To(Equal("Invalid employee ID"))
		})

		It("titles the filtered view after the employee", func() {
			d.LoadByEmployee(ctx, "2")
			Expect(apiMock.byEmployee).To(Equal([]int64{2}))
			Expect(allTitles).To(Equal([]string{"Employee 2 Expenses"}))
		})

		It("clears back to the unfiltered list", func() {
			d.ClearEmployeeFilter(ctx)
			Expect(apiMock.allCalls).To(Equal(1))
			Expect(allTitles).To(Equal([]string{"All Expenses"}))
		})
	})

	Describe("review modal", func() {
		BeforeEach(func() {
			apiMock.pendingResult = []expense.Expense{
				{ID: 7, Username: "alice", Amount: 30, Status: expense.StatusPending},
				{ID: 8, Username: "bob", Amount: 12, Status: expense.StatusPending},
			}
			d.LoadPending(ctx)
		})

		It("opens against a record from the loaded queue", func() {
			d.OpenReview(7)

			id, ok := d.CurrentReviewID()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(int64(7)))
			Expect(opened).To(HaveLen(1))
			Expect(opened[0].Username).To(Equal("alice"))
		})

		It("refuses ids outside the pending queue", func() {
			d.OpenReview(99)

			_, ok := d.CurrentReviewID()
			Expect(ok).To(BeFalse())
			Expect(opened).To(BeEmpty())
			Expect(listMsgs.Current()).NotTo(BeNil())
		})

		It("approves with the comment, then closes and reloads after the delay", func() {
			d.OpenReview(7)
			d.Approve(ctx, "ok")

			Expect(apiMock.approveCalls).To(HaveLen(1))
			Expect(apiMock.approveCalls[0].ID).To(Equal(int64(7)))
			Expect(apiMock.approveCalls[0].Comment).NotTo(BeNil())
			Expect(*apiMock.approveCalls[0].Comment).To(Equal("ok"))
			Expect(reviewMsgs.Current().Text).To(Equal("Expense approved successfully!"))

			// modal stays open until the delay elapses
			_, ok := d.CurrentReviewID()
			Expect(ok).To(BeTrue())
			Expect(apiMock.pendingCalls).To(Equal(1))

			clock.Advance(dispatch.ReviewCloseDelay)

			_, ok = d.CurrentReviewID()
			Expect(ok).To(BeFalse())
			Expect(closed).To(Equal(1))
			Expect(apiMock.pendingCalls).To(Equal(2))
		})

		It("sends no comment field when the comment is blank", func() {
			d.OpenReview(8)
			d.Deny(ctx, "   ")

			Expect(apiMock.denyCalls).To(HaveLen(1))
			Expect(apiMock.denyCalls[0].Comment).To(BeNil())
		})

		It("keeps the modal open on a failed decision", func() {
			apiMock.approveErr = internal.NewApplicationError("Already reviewed", 409)
			d.OpenReview(7)
			d.Approve(ctx, "")

			Expect(reviewMsgs.Current().Text).To(Equal("Already reviewed"))
			clock.Advance(dispatch.ReviewCloseDelay)
			_, ok := d.CurrentReviewID()
			Expect(ok).To(BeTrue())
			Expect(closed).To(BeZero())
		})

		It("rejects a decision with no expense selected", func() {
			d.Approve(ctx, "ok")

			Expect(apiMock.approveCalls).To(BeEmpty())
			Expect(reviewMsgs.Current().Kind).To(Equal(message.KindError))
		})
	})

	Describe("reports", func() {
		It("announces success in the report region", func() {
			d.GenerateAllReport(ctx)

			Expect(reports.calls).To(Equal([]string{"all"}))
			Expect(reportMsgs.Current().Text).To(Equal("Report generated successfully!"))
		})

		It("passes trimmed parameters through", func() {
			d.GenerateEmployeeReport(ctx, " 5 ")
			d.GenerateCategoryReport(ctx, "travel")
			d.GenerateDateRangeReport(ctx, "2024-01-01", "2024-01-31")

			Expect(reports.calls).To(Equal([]string{
				"employee:5",
				"category:travel",
				"range:2024-01-01..2024-01-31",
			}))
		})

		It("surfaces generator failures verbatim", func() {
			reports.err = internal.NewValidationError("Please enter an employee ID", internal.ErrCodeMissingParameter)
			d.GenerateEmployeeReport(ctx, "")

			Expect(reportMsgs.Current().Text).To(Equal("Please enter an employee ID"))
		})
	})

	Describe("Logout", func() {
		It("always performs the server call", func() {
			d.Logout(ctx)
			Expect(apiMock.logoutCalls).To(Equal(1))
		})
	})

	Describe("load failures", func() {
		It("maps transport failures to the generic network message", func() {
			apiMock.pendingErr = internal.NewTransportError(errors.New("refused"))
			d.LoadPending(ctx)

			Expect(listMsgs.Current().Text).To(Equal("Network error. Please try again."))
		})
	})
})
