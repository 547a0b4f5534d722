package dto

import "storeops/internal/domain/indent"

// IndentListQuery filters the indent list.
type IndentListQuery struct {
	Status string `form:"status"`
	PageQuery
}

// ToFilter converts the query to a list filter.
func (q IndentListQuery) ToFilter() indent.ListFilter {
	return indent.ListFilter{
		Status:      indent.Status(q.Status),
		PageRequest: q.PageQuery.ToDomain(),
	}
}
