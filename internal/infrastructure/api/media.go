package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"

	"github.com/moppie/ops-console/internal/domain/media"
)

// MediaListResponse is the paginated media listing envelope.
type MediaListResponse struct {
	Count   int          `json:"count"`
	Results []media.Item `json:"results"`
}

type updateStatusRequest struct {
	Status media.Status `json:"status"`
}

type bulkUpdateStatusRequest struct {
	IDs    []string     `json:"ids"`
	Status media.Status `json:"status"`
}

type importanceRequest struct {
	IsImportant bool `json:"is_important"`
}

// ListMedia returns all media visible to the admin.
func (c *Client) ListMedia(ctx context.Context, pageSize int) ([]media.Item, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	var out MediaListResponse
	if err := c.get(ctx, "media_list", "/media/", query, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListJobMedia returns the media attached to one job.
func (c *Client) ListJobMedia(ctx context.Context, jobID string, pageSize int) ([]media.Item, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	var out MediaListResponse
	if err := c.get(ctx, "media_list_job", fmt.Sprintf("/jobs/%s/media/", jobID), query, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListMyMedia returns the media uploaded by the authenticated employee.
func (c *Client) ListMyMedia(ctx context.Context) ([]media.Item, error) {
	var out MediaListResponse
	if err := c.get(ctx, "media_list_mine", "/employees/me/media/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// UpdateMediaStatus sets the review status of one item.
func (c *Client) UpdateMediaStatus(ctx context.Context, id string, status media.Status) error {
	return c.post(ctx, "media_update_status", fmt.Sprintf("/media/%s/update-status/", id), updateStatusRequest{Status: status}, nil)
}

// BulkUpdateMediaStatus applies one status to the full id set in one call.
func (c *Client) BulkUpdateMediaStatus(ctx context.Context, ids []string, status media.Status) error {
	return c.post(ctx, "media_bulk_update_status", "/media/bulk-update-status/", bulkUpdateStatusRequest{IDs: ids, Status: status}, nil)
}

// SetMediaImportance toggles the importance flag of one item.
func (c *Client) SetMediaImportance(ctx context.Context, id string, important bool) error {
	return c.patch(ctx, "media_set_importance", fmt.Sprintf("/media/%s/importance/", id), importanceRequest{IsImportant: important}, nil)
}

// UploadMedia uploads one file for a job. The content type is sniffed from
// the payload rather than trusted from the filename.
func (c *Client) UploadMedia(ctx context.Context, jobID, filename string, data []byte, category media.Category) (*media.Item, error) {
	mime := mimetype.Detect(data)

	var out media.Item
	_, err := c.do(ctx, "media_upload", http.MethodPost, true, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetFileReader("file", filename, bytes.NewReader(data)).
			SetFormData(map[string]string{
				"job_id":    jobID,
				"category":  string(category),
				"mime_type": mime.String(),
			}).
			SetResult(&out).
			Post("/media/upload/")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
