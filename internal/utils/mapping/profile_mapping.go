package mapping

import (
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/SscSPs/business_report_engine/internal/models"
)

// ToModelProfile converts a domain Profile to the singleton profile row
func ToModelProfile(d domain.Profile) models.ProfileRow {
	return models.ProfileRow{
		ID:        models.ProfileRowID,
		BizName:   d.BizName,
		BizNo:     d.BizNo,
		RepName:   d.RepName,
		Address:   d.Address,
		Tel:       d.Tel,
		Phone:     d.Phone,
		Email:     d.Email,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainProfile converts a profile row to a domain Profile
func ToDomainProfile(m models.ProfileRow) domain.Profile {
	return domain.Profile{
		BizName:   m.BizName,
		BizNo:     m.BizNo,
		RepName:   m.RepName,
		Address:   m.Address,
		Tel:       m.Tel,
		Phone:     m.Phone,
		Email:     m.Email,
		UpdatedAt: m.UpdatedAt,
	}
}
