package land

import (
	"fmt"
	"time"
)

// DaysUntilRentalDue returns the whole days from now's UTC calendar date to due's calendar date,
// negative when overdue, or nil when no due date is set
func DaysUntilRentalDue(due *time.Time, now time.Time) *int {
	if due == nil {
		return nil
	}
	dueDate := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(dueDate.Sub(today).Hours() / 24)
	return &days
}

// RentalDueAlert renders the rental due state shown next to a tenement
func RentalDueAlert(days *int) string {
	switch {
	case days == nil:
		return "No due date set"
	case *days < 0:
		return fmt.Sprintf("Overdue by %d days", -*days)
	case *days == 0:
		return "Due today"
	default:
		return fmt.Sprintf("Due in %d days", *days)
	}
}
