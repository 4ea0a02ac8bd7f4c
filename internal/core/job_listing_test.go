package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"workoo-web/internal/models"
)

func sampleJobs() []models.Job {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Job{
		{ID: 1, Title: "Backend Engineer", Location: "Jakarta", JobType: "FULL_TIME", CreatedAt: base},
		{ID: 2, Title: "Android Developer", Location: "Bandung", JobType: "CONTRACT", CreatedAt: base.Add(48 * time.Hour)},
		{ID: 3, Title: "Data Analyst", Location: "Jakarta Selatan", JobType: "PART_TIME", CreatedAt: base.Add(24 * time.Hour),
			Company: &models.Company{Name: "Backend Labs"}},
		{ID: 4, Title: "Product Designer", Category: "Design", Location: "Remote", JobType: "REMOTE", CreatedAt: base.Add(72 * time.Hour)},
	}
}

func jobIDs(jobs []models.Job) []int {
	ids := make([]int, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func TestFilterJobs(t *testing.T) {
	tests := []struct {
		name      string
		query     JobQuery
		wantIDs   []int
		wantTotal int
		wantPages int
	}{
		{name: "defaults sort newest first", query: JobQuery{}, wantIDs: []int{4, 2, 3, 1}, wantTotal: 4, wantPages: 1},
		{name: "oldest first", query: JobQuery{Sort: SortOldest}, wantIDs: []int{1, 3, 2, 4}, wantTotal: 4, wantPages: 1},
		{name: "by title", query: JobQuery{Sort: SortTitle}, wantIDs: []int{2, 1, 3, 4}, wantTotal: 4, wantPages: 1},
		{name: "keyword matches title and company", query: JobQuery{Keyword: "backend"}, wantIDs: []int{3, 1}, wantTotal: 2, wantPages: 1},
		{name: "keyword matches category", query: JobQuery{Keyword: "DESIGN"}, wantIDs: []int{4}, wantTotal: 1, wantPages: 1},
		{name: "location substring", query: JobQuery{Location: "jakarta"}, wantIDs: []int{3, 1}, wantTotal: 2, wantPages: 1},
		{name: "job type", query: JobQuery{JobType: "contract"}, wantIDs: []int{2}, wantTotal: 1, wantPages: 1},
		{name: "second page", query: JobQuery{Sort: SortOldest, Page: 2, PageSize: 3}, wantIDs: []int{4}, wantTotal: 4, wantPages: 2},
		{name: "page past end is clamped", query: JobQuery{Sort: SortOldest, Page: 9, PageSize: 3}, wantIDs: []int{4}, wantTotal: 4, wantPages: 2},
		{name: "no match", query: JobQuery{Keyword: "chef"}, wantIDs: []int{}, wantTotal: 0, wantPages: 1},
		{name: "unknown sort falls back", query: JobQuery{Sort: "salary"}, wantIDs: []int{4, 2, 3, 1}, wantTotal: 4, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := sampleJobs()
			page := FilterJobs(jobs, tt.query)
			assert.Equal(t, tt.wantIDs, jobIDs(page.Jobs))
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, []int{1, 2, 3, 4}, jobIDs(jobs))
		})
	}
}

func TestJobPageNavigation(t *testing.T) {
	page := FilterJobs(sampleJobs(), JobQuery{Page: 1, PageSize: 2})
	assert.False(t, page.HasPrev())
	assert.True(t, page.HasNext())

	page = FilterJobs(sampleJobs(), JobQuery{Page: 2, PageSize: 2})
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())

	page = FilterJobs(sampleJobs(), JobQuery{PageSize: 500})
	assert.Equal(t, maxPageSize, page.Query.PageSize)
}
