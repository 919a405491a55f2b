package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/moppie/ops-console/internal/domain/job"
)

// JobListResponse is the paginated job listing envelope.
type JobListResponse struct {
	Count   int       `json:"count"`
	Results []job.Job `json:"results"`
}

// ListJobs returns jobs, newest first.
func (c *Client) ListJobs(ctx context.Context, pageSize int) ([]job.Job, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	var out JobListResponse
	if err := c.get(ctx, "jobs_list", "/jobs/", query, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
