package dto

import (
	"github.com/tasktrack/tasktrack-api/internal/query"
)

// ListQuery binds the query string of every listing endpoint. Each entity
// reads the subset of filters it supports. Older clients send searchTerm,
// createdFrom and createdTo; they are accepted as aliases.
type ListQuery struct {
	Page      *int   `form:"page"`
	PageSize  *int   `form:"pageSize"`
	Search    string `form:"search"`
	SearchAlt string `form:"searchTerm"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`

	Role         string `form:"role"`
	Status       string `form:"status"`
	ProjectID    string `form:"projectId"`
	AssignedUser string `form:"assignedUser"`

	CreatedAfter  string `form:"createdAfter"`
	CreatedFrom   string `form:"createdFrom"`
	CreatedBefore string `form:"createdBefore"`
	CreatedTo     string `form:"createdTo"`
	UpdatedAfter  string `form:"updatedAfter"`
	UpdatedBefore string `form:"updatedBefore"`
	DeadlineFrom  string `form:"deadlineFrom"`
	DeadlineTo    string `form:"deadlineTo"`
}

// Criteria returns the common paging fields. An explicit page or pageSize
// outside the accepted range is an error rather than a default.
func (q ListQuery) Criteria() (query.Criteria, error) {
	c := query.Criteria{
		Search:    firstNonEmpty(q.Search, q.SearchAlt),
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if q.Page != nil {
		if *q.Page < 1 {
			return c, query.ErrInvalidPage
		}
		c.Page = *q.Page
	}
	if q.PageSize != nil {
		if *q.PageSize < 1 || *q.PageSize > query.MaxPageSize {
			return c, query.ErrInvalidPageSize
		}
		c.PageSize = *q.PageSize
	}
	return c, nil
}

func (q ListQuery) UserCriteria() (query.UserCriteria, error) {
	var out query.UserCriteria
	var err error
	if out.Criteria, err = q.Criteria(); err != nil {
		return out, err
	}
	out.Role = q.Role
	if out.CreatedAfter, err = query.ParseLowerBound(firstNonEmpty(q.CreatedAfter, q.CreatedFrom)); err != nil {
		return out, err
	}
	if out.CreatedBefore, err = query.ParseUpperBound(firstNonEmpty(q.CreatedBefore, q.CreatedTo)); err != nil {
		return out, err
	}
	return out, nil
}

func (q ListQuery) ProjectCriteria() (query.ProjectCriteria, error) {
	var out query.ProjectCriteria
	var err error
	if out.Criteria, err = q.Criteria(); err != nil {
		return out, err
	}
	out.Status = q.Status
	out.AssignedUser = q.AssignedUser
	if out.CreatedAfter, err = query.ParseLowerBound(firstNonEmpty(q.CreatedAfter, q.CreatedFrom)); err != nil {
		return out, err
	}
	if out.CreatedBefore, err = query.ParseUpperBound(firstNonEmpty(q.CreatedBefore, q.CreatedTo)); err != nil {
		return out, err
	}
	if out.DeadlineFrom, err = query.ParseLowerBound(q.DeadlineFrom); err != nil {
		return out, err
	}
	if out.DeadlineTo, err = query.ParseUpperBound(q.DeadlineTo); err != nil {
		return out, err
	}
	return out, nil
}

func (q ListQuery) TaskCriteria() (query.TaskCriteria, error) {
	var out query.TaskCriteria
	var err error
	if out.Criteria, err = q.Criteria(); err != nil {
		return out, err
	}
	out.Status = q.Status
	out.ProjectID = q.ProjectID
	out.AssignedUser = q.AssignedUser
	if out.CreatedAfter, err = query.ParseLowerBound(firstNonEmpty(q.CreatedAfter, q.CreatedFrom)); err != nil {
		return out, err
	}
	if out.CreatedBefore, err = query.ParseUpperBound(firstNonEmpty(q.CreatedBefore, q.CreatedTo)); err != nil {
		return out, err
	}
	if out.UpdatedAfter, err = query.ParseLowerBound(q.UpdatedAfter); err != nil {
		return out, err
	}
	if out.UpdatedBefore, err = query.ParseUpperBound(q.UpdatedBefore); err != nil {
		return out, err
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
