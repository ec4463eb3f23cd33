package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// CreateSupplierRequest defines the data needed to register a supplier.
type CreateSupplierRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Company  string `json:"company"`
	Category string `json:"category"`
}

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// CreateProjectRequest defines the data needed to register a project.
type CreateProjectRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Client        string          `json:"client"`
	Status        string          `json:"status" binding:"omitempty,oneof=Active Completed 'On Hold'"`
	ValueOfJob    decimal.Decimal `json:"valueOfJob"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
}

// CreateItemRequest defines the data needed to register an inventory item.
type CreateItemRequest struct {
	ItemCode      string          `json:"itemCode" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	OpeningStock  decimal.Decimal `json:"openingStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
}

// ItemResponse defines the data returned for an inventory item.
type ItemResponse struct {
	ItemID        string             `json:"itemID"`
	ItemCode      string             `json:"itemCode"`
	Name          string             `json:"name"`
	Category      string             `json:"category,omitempty"`
	Unit          string             `json:"unit,omitempty"`
	PurchasePrice decimal.Decimal    `json:"purchasePrice"`
	SellingPrice  decimal.Decimal    `json:"sellingPrice"`
	OpeningStock  decimal.Decimal    `json:"openingStock"`
	CurrentStock  decimal.Decimal    `json:"currentStock"`
	MinStockLevel decimal.Decimal    `json:"minStockLevel"`
	Status        domain.StockStatus `json:"status"`
	IsActive      bool               `json:"isActive"`
}

// ToItemResponse converts a domain.Item to ItemResponse DTO.
func ToItemResponse(it *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        it.ItemID,
		ItemCode:      it.ItemCode,
		Name:          it.Name,
		Category:      it.Category,
		Unit:          it.Unit,
		PurchasePrice: it.PurchasePrice,
		SellingPrice:  it.SellingPrice,
		OpeningStock:  it.OpeningStock,
		CurrentStock:  it.CurrentStock,
		MinStockLevel: it.MinStockLevel,
		Status:        domain.StockStatusFor(it.CurrentStock, it.MinStockLevel),
		IsActive:      it.IsActive,
	}
}

// ToItemResponses converts a slice of domain.Item to []ItemResponse.
func ToItemResponses(items []domain.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, it := range items {
		responses[i] = ToItemResponse(&it)
	}
	return responses
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID string `json:"supplierID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
	Category   string `json:"category,omitempty"`
	IsActive   bool   `json:"isActive"`
}

// ToSupplierResponse converts a domain.Supplier to SupplierResponse DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID: s.SupplierID,
		Code:       s.Code,
		Name:       s.Name,
		Company:    s.Company,
		Category:   s.Category,
		IsActive:   s.IsActive,
	}
}

// ToSupplierResponses converts a slice of domain.Supplier to []SupplierResponse.
func ToSupplierResponses(suppliers []domain.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		responses[i] = ToSupplierResponse(&s)
	}
	return responses
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
	Phone      string `json:"phone,omitempty"`
	IsActive   bool   `json:"isActive"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(cu *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: cu.CustomerID,
		Name:       cu.Name,
		Company:    cu.Company,
		Phone:      cu.Phone,
		IsActive:   cu.IsActive,
	}
}

// ToCustomerResponses converts a slice of domain.Customer to []CustomerResponse.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i, cu := range customers {
		responses[i] = ToCustomerResponse(&cu)
	}
	return responses
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID     string          `json:"projectID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Client        string          `json:"client,omitempty"`
	Status        string          `json:"status"`
	ValueOfJob    decimal.Decimal `json:"valueOfJob"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:     p.ProjectID,
		Code:          p.Code,
		Name:          p.Name,
		Client:        p.Client,
		Status:        string(p.Status),
		ValueOfJob:    p.ValueOfJob,
		EstimatedCost: p.EstimatedCost,
	}
}

// ToProjectResponses converts a slice of domain.Project to []ProjectResponse.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = ToProjectResponse(&p)
	}
	return responses
}
