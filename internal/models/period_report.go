package models

import (
	"encoding/json"
	"time"
)

// PeriodReportRow is one row of the period_report table. Every group column
// holds a JSONB object.
type PeriodReportRow struct {
	ReportYear     int             `json:"report_year"` // Unique key
	BusinessInfo   json.RawMessage `json:"business_info"`
	RevenueSummary json.RawMessage `json:"revenue_summary"`
	DeductionInfo  json.RawMessage `json:"deduction_info"`
	FacilityInfo   json.RawMessage `json:"facility_info"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
