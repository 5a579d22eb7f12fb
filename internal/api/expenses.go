package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/expense"
)

// SubmitExpense creates a new expense for the logged-in employee.
func (c *Client) SubmitExpense(ctx context.Context, dto expense.SubmitDTO) (*expense.Expense, error) {
	var created expense.Expense
	if err := c.do(ctx, http.MethodPost, "/api/expenses", dto, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

type listResponse struct {
	Expenses []expense.Expense `json:"expenses"`
}

// ListExpenses fetches the employee's own expenses. An empty status hits the
// unfiltered endpoint; otherwise the filter is passed as a query parameter.
// Server ordering is preserved.
func (c *Client) ListExpenses(ctx context.Context, status string) ([]expense.Expense, error) {
	path := "/api/expenses"
	if status != "" {
		path += "?status=" + queryEscape(status)
	}
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Expenses, nil
}

type singleResponse struct {
	Expense *expense.Expense `json:"expense"`
}

func (c *Client) GetExpense(ctx context.Context, id int64) (*expense.Expense, error) {
	var resp singleResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/expenses/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Expense == nil {
		return nil, internal.NewApplicationError("", http.StatusOK)
	}
	return resp.Expense, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, dto expense.SubmitDTO) (*expense.Expense, error) {
	var updated expense.Expense
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/expenses/%d", id), dto, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/expenses/%d", id), nil, nil)
}
