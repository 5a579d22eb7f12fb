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
	"github.com/frahmantamala/expense-dashboard/internal/sched"
	"github.com/frahmantamala/expense-dashboard/internal/session"
	"github.com/frahmantamala/expense-dashboard/internal/view"
	pkglogger "github.com/frahmantamala/expense-dashboard/pkg/logger"
)

const employeeHelp = `Commands:
  list                 show your expenses
  filter <status>      filter by status (pending/approved/denied), "filter" alone clears
  refresh              reload the current list
  submit               submit a new expense
  edit <id>            edit a pending expense
  delete <id>          delete a pending expense
  logout               log out and return to login
  quit                 exit
`

// RunEmployee starts the employee portal loop on the given streams.
func RunEmployee(cfg *internal.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	client, err := api.NewClient(cfg.API.BaseURL, logger)
	if err != nil {
		return err
	}

	prompter := NewPrompter(in, out)
	gate := session.NewGate(client, session.ExactRole(session.RoleEmployee), logger)
	views := view.EmployeeSections(logger)
	scheduler := sched.Real()
	renderer := render.Renderer{Color: true}

	sink := messageSink(out)
	loggedOut := false

	d := dispatch.NewEmployee(dispatch.EmployeeDeps{
		API:            client,
		Views:          views,
		SubmitMessages: message.NewRegion(scheduler, sink),
		EditMessages:   message.NewRegion(scheduler, sink),
		ListMessages:   message.NewRegion(scheduler, sink),
		Scheduler:      scheduler,
		Confirm:        prompter.Confirm,
		OnList: func(expenses []expense.Expense) {
			fmt.Fprint(out, renderer.EmployeeTable(expenses))
		},
		OnLogout: func() { loggedOut = true },
		Logger:   logger,
	})

	login := &loginScreen{
		client:       client,
		gate:         gate,
		match:        session.ExactRole(session.RoleEmployee),
		deniedText:   "Access denied - This is the employee portal",
		redirectText: "Login successful! Redirecting to employee dashboard...",
		prompter:     prompter,
		out:          out,
		logger:       logger,
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
		fmt.Fprint(out, employeeHelp)

		loggedOut = false
		d.Initialize(sessCtx)

		quit, err := employeeLoop(sessCtx, d, prompter, out, &loggedOut)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if quit {
			return nil
		}
		// logged out: fall through to the gate, which routes back to login
	}
}

func employeeLoop(ctx context.Context, d *dispatch.Employee, prompter *Prompter, out io.Writer, loggedOut *bool) (quit bool, err error) {
	for !*loggedOut {
		line, err := prompter.Line("> ")
		if err != nil {
			return false, err
		}
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "":
		case "help":
			fmt.Fprint(out, employeeHelp)
		case "list":
			d.ShowExpenses(ctx)
		case "filter":
			d.SetStatusFilter(ctx, strings.TrimSpace(arg))
		case "refresh":
			d.LoadExpenses(ctx)
		case "submit":
			if err := employeeSubmit(ctx, d, prompter); err != nil {
				return false, err
			}
		case "edit":
			id, perr := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
			if perr != nil {
				printMessage(out, "Usage: edit <id>", false)
				continue
			}
			if err := employeeEdit(ctx, d, prompter, id); err != nil {
				return false, err
			}
		case "delete":
			id, perr := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
			if perr != nil {
				printMessage(out, "Usage: delete <id>", false)
				continue
			}
			d.Delete(ctx, id)
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

func employeeSubmit(ctx context.Context, d *dispatch.Employee, prompter *Prompter) error {
	d.ShowSubmit()

	amount, err := prompter.Line("Amount: ")
	if err != nil {
		return err
	}
	description, err := prompter.Line("Description: ")
	if err != nil {
		return err
	}
	date, err := prompter.LineDefault("Date", d.FormDate())
	if err != nil {
		return err
	}
	if amount == "" && description == "" {
		// treat an empty form as cancel
		d.CancelSubmit(ctx)
		return nil
	}

	d.Submit(ctx, amount, description, date)
	return nil
}

func employeeEdit(ctx context.Context, d *dispatch.Employee, prompter *Prompter, id int64) error {
	d.EditLoad(ctx, id)

	form := d.CurrentEditForm()
	if form.ExpenseID != id {
		// load failed, message already shown
		return nil
	}

	amount, err := prompter.LineDefault("Amount", form.Amount)
	if err != nil {
		return err
	}
	description, err := prompter.LineDefault("Description", form.Description)
	if err != nil {
		return err
	}
	date, err := prompter.LineDefault("Date", form.Date)
	if err != nil {
		return err
	}
	confirm, err := prompter.Line("Save changes? (y/N): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") && !strings.EqualFold(confirm, "yes") {
		d.CancelEdit(ctx)
		return nil
	}

	d.Update(ctx, amount, description, date)
	return nil
}
