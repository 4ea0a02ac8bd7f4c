package core

import (
	"sort"
	"strings"

	"workoo-web/internal/models"
)

// Sort orders accepted by the job listing.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// JobQuery is the filter, sort and page selection of the job listing.
type JobQuery struct {
	Keyword  string `form:"q"`
	Location string `form:"location"`
	JobType  string `form:"type"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
	PageSize int    `form:"size"`
}

// JobPage is one page of a filtered listing.
type JobPage struct {
	Jobs       []models.Job
	Query      JobQuery
	Total      int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p JobPage) HasPrev() bool { return p.Query.Page > 1 }

// HasNext reports whether a next page exists.
func (p JobPage) HasNext() bool { return p.Query.Page < p.TotalPages }

// FilterJobs filters, sorts and paginates jobs. The input slice is not modified.
func FilterJobs(jobs []models.Job, q JobQuery) JobPage {
	q = normalizeQuery(q)

	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	location := strings.ToLower(strings.TrimSpace(q.Location))

	matched := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if keyword != "" && !matchesKeyword(j, keyword) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location), location) {
			continue
		}
		if q.JobType != "" && !strings.EqualFold(j.JobType, q.JobType) {
			continue
		}
		matched = append(matched, j)
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(matched, func(a, b int) bool { return matched[a].CreatedAt.Before(matched[b].CreatedAt) })
	case SortTitle:
		sort.SliceStable(matched, func(a, b int) bool {
			return strings.ToLower(matched[a].Title) < strings.ToLower(matched[b].Title)
		})
	default:
		sort.SliceStable(matched, func(a, b int) bool { return matched[a].CreatedAt.After(matched[b].CreatedAt) })
	}

	total := len(matched)
	totalPages := (total + q.PageSize - 1) / q.PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if q.Page > totalPages {
		q.Page = totalPages
	}

	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return JobPage{
		Jobs:       matched[start:end],
		Query:      q,
		Total:      total,
		TotalPages: totalPages,
	}
}

func normalizeQuery(q JobQuery) JobQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	switch q.Sort {
	case SortNewest, SortOldest, SortTitle:
	default:
		q.Sort = SortNewest
	}
	return q
}

func matchesKeyword(j models.Job, keyword string) bool {
	if strings.Contains(strings.ToLower(j.Title), keyword) ||
		strings.Contains(strings.ToLower(j.Category), keyword) {
		return true
	}
	return j.Company != nil && strings.Contains(strings.ToLower(j.Company.Name), keyword)
}
