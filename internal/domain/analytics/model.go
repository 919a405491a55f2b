package analytics

// Dashboard is the top-level summary for the overview page.
type Dashboard struct {
	TotalRevenue    float64 `json:"total_revenue"`
	JobsCompleted   int     `json:"jobs_completed"`
	JobsScheduled   int     `json:"jobs_scheduled"`
	ActiveEmployees int     `json:"active_employees"`
	ActiveClients   int     `json:"active_clients"`
	PendingMedia    int     `json:"pending_media"`
}

// RevenuePoint is one bucket of the revenue time series.
type RevenuePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Jobs    int     `json:"jobs"`
}

// Revenue is the revenue report payload.
type Revenue struct {
	Total  float64        `json:"total"`
	Series []RevenuePoint `json:"series"`
}

// JobsReport breaks down jobs by status.
type JobsReport struct {
	Completed int `json:"completed"`
	Scheduled int `json:"scheduled"`
	Cancelled int `json:"cancelled"`
	InFlight  int `json:"in_progress"`
}

// EmployeeStanding ranks one employee in the employees report.
type EmployeeStanding struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Jobs       int     `json:"jobs"`
	Rating     float64 `json:"rating"`
}

// ClientsReport summarizes the client base.
type ClientsReport struct {
	Total     int     `json:"total"`
	New       int     `json:"new"`
	Returning int     `json:"returning"`
	ChurnRate float64 `json:"churn_rate"`
}

// InventoryItem is one supply line in the inventory report.
type InventoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	LowStock bool   `json:"low_stock"`
}

// KPI is one key performance indicator tile.
type KPI struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Target float64 `json:"target,omitempty"`
	Unit   string  `json:"unit,omitempty"`
}

// TrendPoint is one bucket of a named trend series.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Trend is a named time series.
type Trend struct {
	Name   string       `json:"name"`
	Points []TrendPoint `json:"points"`
}
