package dto

import (
	"time"

	"github.com/tasktrack/tasktrack-api/internal/services"
)

// ProjectRequest is used for both create and update. On update an omitted
// assignedUsers keeps the stored list while an explicit [] clears it.
type ProjectRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	AssignedUsers []string   `json:"assignedUsers"`
	Deadline      *time.Time `json:"deadline"`
}

func (r ProjectRequest) Input() services.ProjectInput {
	return services.ProjectInput{
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		AssignedUsers: r.AssignedUsers,
		Deadline:      r.Deadline,
	}
}
