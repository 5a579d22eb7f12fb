// Package view tracks which dashboard section is visible. Sections are
// mutually exclusive: showing one always hides every other first.
package view

import (
	"fmt"
	"log/slog"
	"sync"
)

type Section string

// Section identifiers for both portals.
const (
	SectionSubmit   Section = "submit-expense"
	SectionExpenses Section = "expenses"
	SectionEdit     Section = "edit-expense"

	SectionPending Section = "pending-expenses"
	SectionAll     Section = "all-expenses"
	SectionReports Section = "reports"
)

// Controller is a finite state machine over a fixed set of sections. At most
// one section is visible at any time.
type Controller struct {
	mu       sync.Mutex
	sections []Section
	visible  Section
	logger   *slog.Logger
}

func NewController(logger *slog.Logger, sections ...Section) *Controller {
	return &Controller{
		sections: sections,
		logger:   logger,
	}
}

// ShowSection hides all sections, then shows exactly id. Unknown ids are
// rejected without changing the visible section.
func (c *Controller) ShowSection(id Section) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registered(id) {
		return fmt.Errorf("unknown section %q", id)
	}

	// A single visible field makes hide-all-then-show structural: assigning
	// the new section cannot leave another one showing.
	c.visible = id
	c.logger.Debug("section shown", "section", id)
	return nil
}

// HideAll leaves no section visible. Calling it twice is the same as once.
func (c *Controller) HideAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = ""
}

// Visible returns the currently shown section, or false when none is shown.
func (c *Controller) Visible() (Section, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible, c.visible != ""
}

// Sections returns the fixed section set this controller was built with.
func (c *Controller) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

func (c *Controller) registered(id Section) bool {
	for _, s := range c.sections {
		if s == id {
			return true
		}
	}
	return false
}

// EmployeeSections builds the controller for the employee dashboard.
func EmployeeSections(logger *slog.Logger) *Controller {
	return NewController(logger, SectionSubmit, SectionExpenses, SectionEdit)
}

// ManagerSections builds the controller for the manager dashboard.
func ManagerSections(logger *slog.Logger) *Controller {
	return NewController(logger, SectionPending, SectionAll, SectionReports)
}
