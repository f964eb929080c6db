package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/SscSPs/business_report_engine/internal/models"
)

// ToModelPeriodReport converts a domain PeriodReport to a row with one JSON
// document per group
func ToModelPeriodReport(d domain.PeriodReport) (models.PeriodReportRow, error) {
	row := models.PeriodReportRow{ReportYear: int(d.Period), UpdatedAt: d.UpdatedAt}
	for _, name := range domain.GroupOrder {
		raw, err := json.Marshal(d.Group(name))
		if err != nil {
			return models.PeriodReportRow{}, fmt.Errorf("encode group %s: %w", name, err)
		}
		*groupColumn(&row, name) = raw
	}
	return row, nil
}

// ToDomainPeriodReport converts a period report row to a domain PeriodReport.
// Empty or null columns become empty groups.
func ToDomainPeriodReport(m models.PeriodReportRow) (domain.PeriodReport, error) {
	report := domain.NewPeriodReport(domain.Period(m.ReportYear))
	report.UpdatedAt = m.UpdatedAt
	for _, name := range domain.GroupOrder {
		raw := *groupColumn(&m, name)
		if len(raw) == 0 {
			continue
		}
		var g domain.AttributeGroup
		if err := json.Unmarshal(raw, &g); err != nil {
			return domain.PeriodReport{}, fmt.Errorf("decode group %s of %d: %w", name, m.ReportYear, err)
		}
		report.Groups[name] = g
	}
	return report, nil
}

func groupColumn(row *models.PeriodReportRow, name domain.GroupName) *json.RawMessage {
	switch name {
	case domain.GroupBusinessInfo:
		return &row.BusinessInfo
	case domain.GroupRevenueSummary:
		return &row.RevenueSummary
	case domain.GroupDeductionInfo:
		return &row.DeductionInfo
	default:
		return &row.FacilityInfo
	}
}
