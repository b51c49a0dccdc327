package mapping

import (
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/models"
)

// ToModelPriceRecord converts a domain PriceRecord to its model form.
func ToModelPriceRecord(d domain.PriceRecord) models.PriceRecord {
	return models.PriceRecord{
		PriceID:         d.PriceID,
		ProvinceID:      d.ProvinceID,
		Category:        string(d.Category),
		ServiceName:     d.ServiceName,
		UnitPrice:       d.UnitPrice,
		SecondaryPrice:  d.SecondaryPrice,
		CurrencyCode:    d.CurrencyCode,
		UnitDescription: d.UnitDescription,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPriceRecord converts a model PriceRecord to its domain form.
func ToDomainPriceRecord(m models.PriceRecord) domain.PriceRecord {
	return domain.PriceRecord{
		PriceID:         m.PriceID,
		ProvinceID:      m.ProvinceID,
		Category:        domain.ServiceCategory(m.Category),
		ServiceName:     m.ServiceName,
		UnitPrice:       m.UnitPrice,
		SecondaryPrice:  m.SecondaryPrice,
		CurrencyCode:    m.CurrencyCode,
		UnitDescription: m.UnitDescription,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPriceRecordSlice converts a slice of model PriceRecords to domain form.
func ToDomainPriceRecordSlice(ms []models.PriceRecord) []domain.PriceRecord {
	ds := make([]domain.PriceRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPriceRecord(m)
	}
	return ds
}
