package expense

// Expense is the flat record both dashboards render. Employee endpoints
// return it directly; manager endpoints return the nested envelope shape and
// go through Flatten first.
type Expense struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"userId"`
	Username         string  `json:"username,omitempty"`
	Amount           float64 `json:"amount"`
	Description      string  `json:"description"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	ReviewerUsername string  `json:"reviewerUsername,omitempty"`
	Comment          string  `json:"comment,omitempty"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// Editable reports whether the employee may still change or delete the
// expense. Review decisions are terminal.
func (e *Expense) Editable() bool {
	return e.Status == StatusPending
}

// UnknownUsername is rendered when the manager envelope carries no user
// identity for a record.
const UnknownUsername = "Unknown"

// Envelope is one item of the manager list responses: nested expense, user
// and approval sub-objects, any of which may be missing.
type Envelope struct {
	Expense  *EnvelopeExpense  `json:"expense"`
	User     *EnvelopeUser     `json:"user"`
	Approval *EnvelopeApproval `json:"approval"`
}

type EnvelopeExpense struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type EnvelopeUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type EnvelopeApproval struct {
	Status   string `json:"status"`
	Reviewer string `json:"reviewer"`
	Comment  string `json:"comment"`
}

// FromEnvelope flattens one envelope item. Missing user identity defaults to
// UnknownUsername; missing approval fields stay empty.
func FromEnvelope(item Envelope) Expense {
	out := Expense{Username: UnknownUsername}

	if e := item.Expense; e != nil {
		out.ID = e.ID
		out.UserID = e.UserID
		out.Amount = e.Amount
		out.Description = e.Description
		out.Date = e.Date
	}
	if u := item.User; u != nil {
		if u.Username != "" {
			out.Username = u.Username
		}
		if out.UserID == 0 {
			out.UserID = u.ID
		}
	}
	if a := item.Approval; a != nil {
		out.Status = a.Status
		out.ReviewerUsername = a.Reviewer
		out.Comment = a.Comment
	}
	return out
}

// Flatten converts a manager list payload, preserving server order.
func Flatten(items []Envelope) []Expense {
	out := make([]Expense, len(items))
	for i, item := range items {
		out[i] = FromEnvelope(item)
	}
	return out
}
