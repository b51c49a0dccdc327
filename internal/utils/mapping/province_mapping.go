package mapping

import (
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/models"
)

// ToModelProvince converts a domain Province to its model form.
func ToModelProvince(d domain.Province) models.Province {
	return models.Province{
		ProvinceID:  d.ProvinceID,
		Name:        d.Name,
		Region:      d.Region,
		Country:     d.Country,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProvince converts a model Province to its domain form.
func ToDomainProvince(m models.Province) domain.Province {
	return domain.Province{
		ProvinceID:  m.ProvinceID,
		Name:        m.Name,
		Region:      m.Region,
		Country:     m.Country,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProvinceSlice converts a slice of model Provinces to domain Provinces.
func ToDomainProvinceSlice(ms []models.Province) []domain.Province {
	ds := make([]domain.Province, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProvince(m)
	}
	return ds
}
