package api

import (
	"context"
	"net/url"

	"github.com/moppie/ops-console/internal/domain/analytics"
)

// RangeParams narrows analytics reads to a period, e.g. "month".
type RangeParams struct {
	Period string
	From   string
	To     string
}

func (p RangeParams) values() url.Values {
	query := url.Values{}
	if p.Period != "" {
		query.Set("period", p.Period)
	}
	if p.From != "" {
		query.Set("from", p.From)
	}
	if p.To != "" {
		query.Set("to", p.To)
	}
	return query
}

// AnalyticsDashboard returns the overview summary.
func (c *Client) AnalyticsDashboard(ctx context.Context) (*analytics.Dashboard, error) {
	var out analytics.Dashboard
	if err := c.get(ctx, "analytics_dashboard", "/analytics/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyticsRevenue returns the revenue report.
func (c *Client) AnalyticsRevenue(ctx context.Context, params RangeParams) (*analytics.Revenue, error) {
	var out analytics.Revenue
	if err := c.get(ctx, "analytics_revenue", "/analytics/revenue", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyticsJobs returns the jobs breakdown.
func (c *Client) AnalyticsJobs(ctx context.Context, params RangeParams) (*analytics.JobsReport, error) {
	var out analytics.JobsReport
	if err := c.get(ctx, "analytics_jobs", "/analytics/jobs", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyticsEmployees returns per-employee standings.
func (c *Client) AnalyticsEmployees(ctx context.Context, params RangeParams) ([]analytics.EmployeeStanding, error) {
	var out []analytics.EmployeeStanding
	if err := c.get(ctx, "analytics_employees", "/analytics/employees", params.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyticsClients returns the client base summary.
func (c *Client) AnalyticsClients(ctx context.Context, params RangeParams) (*analytics.ClientsReport, error) {
	var out analytics.ClientsReport
	if err := c.get(ctx, "analytics_clients", "/analytics/clients", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyticsInventory returns supply levels.
func (c *Client) AnalyticsInventory(ctx context.Context) ([]analytics.InventoryItem, error) {
	var out []analytics.InventoryItem
	if err := c.get(ctx, "analytics_inventory", "/analytics/inventory", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyticsKPIs returns the KPI tiles.
func (c *Client) AnalyticsKPIs(ctx context.Context, params RangeParams) ([]analytics.KPI, error) {
	var out []analytics.KPI
	if err := c.get(ctx, "analytics_kpis", "/analytics/kpis", params.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyticsTrends returns named trend series.
func (c *Client) AnalyticsTrends(ctx context.Context, params RangeParams) ([]analytics.Trend, error) {
	var out []analytics.Trend
	if err := c.get(ctx, "analytics_trends", "/analytics/trends", params.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyticsExportReport downloads a report as a binary blob.
func (c *Client) AnalyticsExportReport(ctx context.Context, format string, params RangeParams) ([]byte, error) {
	query := params.values()
	if format != "" {
		query.Set("format", format)
	}
	return c.getRaw(ctx, "analytics_export", "/analytics/reports/export", query)
}
