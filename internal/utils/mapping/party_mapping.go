package mapping

import (
	"github.com/sitebooks/site_books_app/internal/core/domain"
	"github.com/sitebooks/site_books_app/internal/models"
)

// ToModelSupplier converts a domain Supplier to a model Supplier
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:  d.SupplierID,
		Code:        d.Code,
		Name:        d.Name,
		Company:     d.Company,
		Category:    d.Category,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:  m.SupplierID,
		Code:        m.Code,
		Name:        m.Name,
		Company:     m.Company,
		Category:    m.Category,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Company:     d.Company,
		Phone:       d.Phone,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Company:     m.Company,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:     d.ProjectID,
		Code:          d.Code,
		Name:          d.Name,
		Client:        d.Client,
		Status:        string(d.Status),
		ValueOfJob:    d.ValueOfJob,
		EstimatedCost: d.EstimatedCost,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:     m.ProjectID,
		Code:          m.Code,
		Name:          m.Name,
		Client:        m.Client,
		Status:        domain.ProjectStatus(m.Status),
		ValueOfJob:    m.ValueOfJob,
		EstimatedCost: m.EstimatedCost,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to domain form
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}
