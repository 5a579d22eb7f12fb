package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/api"
	"github.com/frahmantamala/expense-dashboard/internal/dispatch"
	"github.com/frahmantamala/expense-dashboard/internal/expense"
	"github.com/frahmantamala/expense-dashboard/internal/message"
	"github.com/frahmantamala/expense-dashboard/internal/render"
	"github.com/frahmantamala/expense-dashboard/internal/report"
	"github.com/frahmantamala/expense-dashboard/internal/sched"
	"github.com/frahmantamala/expense-dashboard/internal/session"
	"github.com/frahmantamala/expense-dashboard/internal/view"
	pkglogger "github.com/frahmantamala/expense-dashboard/pkg/logger"
)

const managerHelp = `Commands:
  pending                        show expenses awaiting review
  all                            show all expenses
  employee <id>                  filter all expenses by employee
  clear                          clear the employee filter
  review <id>                    review a pending expense
  reports                        show report options
  report all                     download the full CSV report
  report pending                 download the pending CSV report
  report employee <id>           download one employee's CSV report
  report category <name>         download a category CSV report
  report range <start> <end>     download a date-range CSV report
  logout                         log out and return to login
  quit                           exit
`

// RunManager starts the manager portal loop on the given streams.
func RunManager(cfg *internal.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	client, err := api.NewClient(cfg.API.BaseURL, logger)
	if err != nil {
		return err
	}

	prompter := NewPrompter(in, out)
	match := session.FoldRole(session.RoleManager)
	gate := session.NewGate(client, match, logger)
	views := view.ManagerSections(logger)
	scheduler := sched.Real()
	renderer := render.Renderer{Color: true}
	reports := report.NewGenerator(client, cfg.Reports.OutputDir, logger)

	sink := messageSink(out)
	loggedOut := false

	d := dispatch.NewManager(dispatch.ManagerDeps{
		API:            client,
		Reports:        reports,
		Views:          views,
		ListMessages:   message.NewRegion(scheduler, sink),
		ReviewMessages: message.NewRegion(scheduler, sink),
		ReportMessages: message.NewRegion(scheduler, sink),
		Scheduler:      scheduler,
		OnPending: func(expenses []expense.Expense) {
			fmt.Fprint(out, renderer.PendingTable(expenses))
		},
		OnAll: func(expenses []expense.Expense, title string) {
			fmt.Fprint(out, renderer.AllTable(expenses, title))
		},
		OnReviewOpen: func(e expense.Expense) {
			fmt.Fprint(out, renderer.ReviewDetails(e))
		},
		OnLogout: func() { loggedOut = true },
		Logger:   logger,
	})

	login := &loginScreen{
		client:             client,
		gate:               gate,
		match:              match,
		requireSuccessFlag: true,
		deniedText:         "Access denied - This is the manager portal",
		redirectText:       "Login successful! Redirecting to manager dashboard...",
		prompter:           prompter,
		out:                out,
		logger:             logger,
	}

	ctx := context.Background()
	for {
		user, ok := gate.Authorize(ctx)
		if !ok {
			user, err = login.run(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}

		sessCtx := internal.ContextWithUsername(ctx, user.Username)
		sessCtx = pkglogger.With(sessCtx, "username", user.Username)
		fmt.Fprintf(out, "Logged in as %s\n", user.Username)
		fmt.Fprint(out, managerHelp)

		loggedOut = false
		d.Initialize(sessCtx)

		quit, err := managerLoop(sessCtx, d, prompter, out, &loggedOut)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if quit {
			return nil
		}
	}
}

func managerLoop(ctx context.Context, d *dispatch.Manager, prompter *Prompter, out io.Writer, loggedOut *bool) (quit bool, err error) {
	for !*loggedOut {
		line, err := prompter.Line("> ")
		if err != nil {
			return false, err
		}
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "":
		case "help":
			fmt.Fprint(out, managerHelp)
		case "pending":
			d.ShowPending(ctx)
		case "all":
			d.ShowAll(ctx)
		case "employee":
			d.LoadByEmployee(ctx, arg)
		case "clear":
			d.ClearEmployeeFilter(ctx)
		case "review":
			id, perr := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
			if perr != nil {
				printMessage(out, "Usage: review <id>", false)
				continue
			}
			if err := managerReview(ctx, d, prompter, out, id); err != nil {
				return false, err
			}
		case "reports":
			d.ShowReports()
			fmt.Fprint(out, managerHelp)
		case "report":
			if err := managerReport(ctx, d, prompter, out, arg); err != nil {
				return false, err
			}
		case "logout":
			d.Logout(ctx)
		case "quit", "exit":
			return true, nil
		default:
			printMessage(out, fmt.Sprintf("Unknown command %q, try help", cmd), false)
		}
	}
	return false, nil
}

func managerReview(ctx context.Context, d *dispatch.Manager, prompter *Prompter, out io.Writer, id int64) error {
	d.OpenReview(id)
	if _, open := d.CurrentReviewID(); !open {
		// not pending, message already shown
		return nil
	}

	decision, err := prompter.Line("Decision (approve/deny/cancel): ")
	if err != nil {
		return err
	}
	switch strings.ToLower(decision) {
	case "approve", "deny":
	default:
		d.CloseReview()
		return nil
	}

	comment, err := prompter.Line("Comment (optional): ")
	if err != nil {
		return err
	}

	if strings.EqualFold(decision, "approve") {
		d.Approve(ctx, comment)
	} else {
		d.Deny(ctx, comment)
	}
	return nil
}

func managerReport(ctx context.Context, d *dispatch.Manager, prompter *Prompter, out io.Writer, arg string) error {
	variant, rest, _ := strings.Cut(strings.TrimSpace(arg), " ")

	switch variant {
	case "all":
		d.GenerateAllReport(ctx)
	case "pending":
		d.GeneratePendingReport(ctx)
	case "employee":
		d.GenerateEmployeeReport(ctx, rest)
	case "category":
		d.GenerateCategoryReport(ctx, rest)
	case "range":
		start, end, _ := strings.Cut(strings.TrimSpace(rest), " ")
		d.GenerateDateRangeReport(ctx, strings.TrimSpace(start), strings.TrimSpace(end))
	default:
		printMessage(out, "Usage: report all|pending|employee <id>|category <name>|range <start> <end>", false)
	}
	return nil
}
