package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleItems() []Item {
	return []Item{
		{ID: "m1", JobID: "j1", JobTitle: "Office deep clean", Category: CategoryBefore, Status: StatusPending, Customer: "Acme BV", Staff: "Sanne", UploadedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "m2", JobID: "j1", JobTitle: "Office deep clean", Category: CategoryAfter, Status: StatusApproved, Customer: "Acme BV", Staff: "Sanne", UploadedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), IsImportant: true},
		{ID: "m3", JobID: "j2", JobTitle: "Window wash", Category: CategoryAfter, Status: StatusFlagged, Customer: "Bakker", Staff: "Tom", UploadedAt: time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilterZeroMatchesEverything(t *testing.T) {
	var f Filter
	assert.True(t, f.IsZero())
	assert.Equal(t, []string{"m1", "m2", "m3"}, ids(f.Apply(sampleItems())))
}

func TestFilterByStatus(t *testing.T) {
	f := Filter{Status: StatusApproved}
	assert.Equal(t, []string{"m2"}, ids(f.Apply(sampleItems())))
}

func TestFilterByCategory(t *testing.T) {
	f := Filter{Category: CategoryAfter}
	assert.Equal(t, []string{"m2", "m3"}, ids(f.Apply(sampleItems())))
}

func TestFilterByJob(t *testing.T) {
	f := Filter{JobID: "j1"}
	assert.Equal(t, []string{"m1", "m2"}, ids(f.Apply(sampleItems())))
}

func TestFilterImportantOnly(t *testing.T) {
	f := Filter{ImportantOnly: true}
	assert.Equal(t, []string{"m2"}, ids(f.Apply(sampleItems())))
}

func TestFilterByDateRange(t *testing.T) {
	f := Filter{
		From: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []string{"m2"}, ids(f.Apply(sampleItems())))
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		search string
		want   []string
	}{
		{"office", []string{"m1", "m2"}},
		{"OFFICE", []string{"m1", "m2"}},
		{"bakker", []string{"m3"}},
		{"sanne", []string{"m1", "m2"}},
		{"  window  ", []string{"m3"}},
		{"nomatch", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			f := Filter{Search: tt.search}
			assert.Equal(t, tt.want, ids(f.Apply(sampleItems())))
		})
	}
}

func TestFilterPredicatesCombineWithAND(t *testing.T) {
	f := Filter{Status: StatusApproved, Category: CategoryAfter, JobID: "j1"}
	assert.Equal(t, []string{"m2"}, ids(f.Apply(sampleItems())))

	f.JobID = "j2"
	assert.Empty(t, f.Apply(sampleItems()))
}

func TestFilterPreservesOrder(t *testing.T) {
	f := Filter{Category: CategoryAfter}
	got := f.Apply(sampleItems())
	assert.Equal(t, "m2", got[0].ID)
	assert.Equal(t, "m3", got[1].ID)
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusFlagged, StatusRejected} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, Status("published").IsValid())
	assert.False(t, Status("").IsValid())
}
