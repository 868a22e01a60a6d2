package dto

import (
	"time"

	"github.com/tasktrack/tasktrack-api/internal/services"
)

// TaskRequest is used for both create and update. Older clients send title,
// assignedTo and dueDate; they are accepted alongside the current names.
type TaskRequest struct {
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	ProjectID     string     `json:"projectId"`
	AssignedUsers []string   `json:"assignedUsers"`
	AssignedTo    string     `json:"assignedTo"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	DueDate       *time.Time `json:"dueDate"`
}

func (r TaskRequest) Input() services.TaskInput {
	return services.TaskInput{
		Name:          r.Name,
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		ProjectID:     r.ProjectID,
		AssignedUsers: r.AssignedUsers,
		AssignedTo:    r.AssignedTo,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		DueDate:       r.DueDate,
	}
}
