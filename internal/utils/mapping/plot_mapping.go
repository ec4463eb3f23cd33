package mapping

import (
	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/models"
)

// ToModelPlotSale converts a domain PlotSale to a model PlotSale
func ToModelPlotSale(d domain.PlotSale) models.PlotSale {
	return models.PlotSale{
		PlotSaleID:     d.PlotSaleID,
		ReferenceNo:    d.ReferenceNo,
		Date:           d.Date,
		PlotNumber:     d.PlotNumber,
		ProjectID:      d.ProjectID,
		CustomerID:     d.CustomerID,
		PlotSize:       d.PlotSize,
		Unit:           d.Unit,
		FinalPrice:     d.FinalPrice,
		AmountReceived: d.AmountReceived,
		Balance:        d.Balance,
		Status:         string(d.Status),
		Cancelled:      d.Cancelled,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlotSale converts a model PlotSale to a domain PlotSale
func ToDomainPlotSale(m models.PlotSale) domain.PlotSale {
	return domain.PlotSale{
		PlotSaleID:     m.PlotSaleID,
		ReferenceNo:    m.ReferenceNo,
		Date:           m.Date,
		PlotNumber:     m.PlotNumber,
		ProjectID:      m.ProjectID,
		CustomerID:     m.CustomerID,
		PlotSize:       m.PlotSize,
		Unit:           m.Unit,
		FinalPrice:     m.FinalPrice,
		AmountReceived: m.AmountReceived,
		Balance:        m.Balance,
		Status:         domain.PaymentStatus(m.Status),
		Cancelled:      m.Cancelled,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPlotSaleSlice converts a slice of model PlotSales to domain form
func ToDomainPlotSaleSlice(ms []models.PlotSale) []domain.PlotSale {
	ds := make([]domain.PlotSale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlotSale(m)
	}
	return ds
}
