package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/dto"
	"github.com/sitebooks/site_books_app/internal/middleware"
)

// masterDataHandler handles HTTP requests for suppliers, customers, projects and items.
type masterDataHandler struct {
	masterData portssvc.MasterDataSvcFacade
}

func newMasterDataHandler(masterData portssvc.MasterDataSvcFacade) *masterDataHandler {
	return &masterDataHandler{masterData: masterData}
}

// registerMasterDataRoutes registers routes for master data records.
func registerMasterDataRoutes(rg *gin.RouterGroup, masterData portssvc.MasterDataSvcFacade) {
	h := newMasterDataHandler(masterData)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:code", h.getSupplier)
	}
	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
	}
	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
	}
	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:code", h.getItem)
	}
}

func (h *masterDataHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	supplier, err := h.masterData.CreateSupplier(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create supplier", slog.String("code", req.Code), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

func (h *masterDataHandler) getSupplier(c *gin.Context) {
	supplier, err := h.masterData.GetSupplierByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve supplier")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

func (h *masterDataHandler) listSuppliers(c *gin.Context) {
	suppliers, err := h.masterData.ListSuppliers(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponses(suppliers))
}

func (h *masterDataHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.masterData.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create customer", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *masterDataHandler) getCustomer(c *gin.Context) {
	customer, err := h.masterData.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *masterDataHandler) listCustomers(c *gin.Context) {
	customers, err := h.masterData.ListCustomers(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponses(customers))
}

func (h *masterDataHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	project, err := h.masterData.CreateProject(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create project", slog.String("code", req.Code), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *masterDataHandler) getProject(c *gin.Context) {
	project, err := h.masterData.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *masterDataHandler) listProjects(c *gin.Context) {
	projects, err := h.masterData.ListProjects(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}

func (h *masterDataHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.masterData.CreateItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Warn("Failed to create item", slog.String("item_code", req.ItemCode), slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

func (h *masterDataHandler) getItem(c *gin.Context) {
	item, err := h.masterData.GetItemByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

func (h *masterDataHandler) listItems(c *gin.Context) {
	items, err := h.masterData.ListItems(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponses(items))
}
