package mapping

import (
	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/models"
)

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:        d.ItemID,
		ItemCode:      d.ItemCode,
		Name:          d.Name,
		Category:      d.Category,
		Unit:          d.Unit,
		PurchasePrice: d.PurchasePrice,
		SellingPrice:  d.SellingPrice,
		OpeningStock:  d.OpeningStock,
		CurrentStock:  d.CurrentStock,
		MinStockLevel: d.MinStockLevel,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to a domain Item
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:        m.ItemID,
		ItemCode:      m.ItemCode,
		Name:          m.Name,
		Category:      m.Category,
		Unit:          m.Unit,
		PurchasePrice: m.PurchasePrice,
		SellingPrice:  m.SellingPrice,
		OpeningStock:  m.OpeningStock,
		CurrentStock:  m.CurrentStock,
		MinStockLevel: m.MinStockLevel,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainItemSlice converts a slice of model Items to domain Items
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	ds := make([]domain.Item, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItem(m)
	}
	return ds
}
