package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/moppie/ops-console/internal/domain/employee"
)

// EmployeeListResponse is the paginated staff directory envelope.
type EmployeeListResponse struct {
	Count   int                 `json:"count"`
	Results []employee.Employee `json:"results"`
}

// EmployeeRequest is the create/update payload.
type EmployeeRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

// ListEmployees returns the staff directory.
func (c *Client) ListEmployees(ctx context.Context, pageSize int) ([]employee.Employee, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	var out EmployeeListResponse
	if err := c.get(ctx, "employees_list", "/employees/", query, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetEmployee returns one staff member.
func (c *Client) GetEmployee(ctx context.Context, id string) (*employee.Employee, error) {
	var out employee.Employee
	if err := c.get(ctx, "employees_get", fmt.Sprintf("/employees/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEmployee adds a staff member.
func (c *Client) CreateEmployee(ctx context.Context, req EmployeeRequest) (*employee.Employee, error) {
	var out employee.Employee
	if err := c.post(ctx, "employees_create", "/employees/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEmployee replaces a staff member record.
func (c *Client) UpdateEmployee(ctx context.Context, id string, req EmployeeRequest) (*employee.Employee, error) {
	var out employee.Employee
	if err := c.put(ctx, "employees_update", fmt.Sprintf("/employees/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEmployee removes a staff member.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.delete(ctx, "employees_delete", fmt.Sprintf("/employees/%s", id))
}

// EmployeeSchedule returns the shift calendar for one employee.
func (c *Client) EmployeeSchedule(ctx context.Context, id string) ([]employee.ScheduleEntry, error) {
	var out []employee.ScheduleEntry
	if err := c.get(ctx, "employees_schedule", fmt.Sprintf("/employees/%s/schedule", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmployeePerformance returns review scores per period.
func (c *Client) EmployeePerformance(ctx context.Context, id string) ([]employee.Performance, error) {
	var out []employee.Performance
	if err := c.get(ctx, "employees_performance", fmt.Sprintf("/employees/%s/performance", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmployeeAvailability returns the weekly availability windows.
func (c *Client) EmployeeAvailability(ctx context.Context, id string) ([]employee.Availability, error) {
	var out []employee.Availability
	if err := c.get(ctx, "employees_availability", fmt.Sprintf("/employees/%s/availability", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmployeeDocuments returns the uploaded HR documents.
func (c *Client) EmployeeDocuments(ctx context.Context, id string) ([]employee.Document, error) {
	var out []employee.Document
	if err := c.get(ctx, "employees_documents", fmt.Sprintf("/employees/%s/documents", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmployeeStats returns the aggregate counters for one employee.
func (c *Client) EmployeeStats(ctx context.Context, id string) (*employee.Stats, error) {
	var out employee.Stats
	if err := c.get(ctx, "employees_stats", fmt.Sprintf("/employees/%s/stats", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
