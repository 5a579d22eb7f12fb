package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/expense"
)

// envelopeResponse is the manager backend's list shape: one envelope per
// record with nested expense/user/approval sub-objects.
type envelopeResponse struct {
	Success bool               `json:"success"`
	Data    []expense.Envelope `json:"data"`
	Error   string             `json:"error"`
}

func (c *Client) managerList(ctx context.Context, path string) ([]expense.Expense, error) {
	var resp envelopeResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, internal.NewApplicationError(resp.Error, http.StatusOK)
	}
	return expense.Flatten(resp.Data), nil
}

// AllExpenses fetches every expense across employees, flattened for display.
func (c *Client) AllExpenses(ctx context.Context) ([]expense.Expense, error) {
	return c.managerList(ctx, "/api/expenses")
}

// PendingExpenses fetches only records awaiting review.
func (c *Client) PendingExpenses(ctx context.Context) ([]expense.Expense, error) {
	return c.managerList(ctx, "/api/expenses/pending")
}

// ExpensesByEmployee fetches one employee's expenses.
func (c *Client) ExpensesByEmployee(ctx context.Context, employeeID int64) ([]expense.Expense, error) {
	return c.managerList(ctx, fmt.Sprintf("/api/expenses/employee/%d", employeeID))
}

// reviewDTO posts the optional free-text comment of a decision. A nil comment
// is sent as JSON null, matching the backend contract.
type reviewDTO struct {
	Comment *string `json:"comment"`
}

type reviewResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) review(ctx context.Context, id int64, action string, comment *string) error {
	path := fmt.Sprintf("/api/expenses/%d/%s", id, action)
	var resp reviewResponse
	if err := c.do(ctx, http.MethodPost, path, reviewDTO{Comment: comment}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return internal.NewApplicationError(resp.Error, http.StatusOK)
	}
	return nil
}

// ApproveExpense marks a pending expense approved. The decision is terminal.
func (c *Client) ApproveExpense(ctx context.Context, id int64, comment *string) error {
	return c.review(ctx, id, "approve", comment)
}

// DenyExpense marks a pending expense denied. The decision is terminal.
func (c *Client) DenyExpense(ctx context.Context, id int64, comment *string) error {
	return c.review(ctx, id, "deny", comment)
}

// DownloadReport fetches a CSV report body. path must be one of the report
// endpoint paths built by the report package.
func (c *Client) DownloadReport(ctx context.Context, path string) ([]byte, error) {
	return c.download(ctx, path)
}
