package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/profit"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShipmentHandler struct {
	shipmentService service.ShipmentService
	exportService   service.ExportService
}

func NewShipmentHandler(shipmentService service.ShipmentService, exportService service.ExportService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService, exportService: exportService}
}

func (h *ShipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyUser := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	shipments := router.Group("/api/shipments")
	{
		shipments.GET("", anyUser, h.ListShipments)
		shipments.GET("/clients", anyUser, h.ListClients)
		shipments.GET("/:id", anyUser, h.GetShipment)
		shipments.GET("/:id/breakdown", anyUser, h.GetBreakdown)
		shipments.POST("", anyUser, h.CreateShipment)
		shipments.PUT("/:id", anyUser, h.UpdateShipment)
		shipments.DELETE("/:id", managers, h.DeleteShipment)
		shipments.POST("/bulk-delete", managers, h.BulkDeleteShipments)
	}
}

// @Summary      List shipments
// @Description  List shipment records with search and filters, each decorated with its net profit
// @Tags         shipments
// @Produce      json
// @Param        search          query string false "Substring match on booking no, business no, container no, shipper, client"
// @Param        container_type  query string false "Exact container type, or 'all'"
// @Param        client          query string false "Exact client, or 'all'"
// @Param        page            query int    false "Page number"
// @Param        limit           query int    false "Page size"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments [get]
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	params := pagination.Parse(c)
	filter := profit.Filter{
		Search:        c.Query("search"),
		ContainerType: c.DefaultQuery("container_type", profit.FilterAll),
		Client:        c.DefaultQuery("client", profit.FilterAll),
	}

	shipments, total, err := h.shipmentService.ListShipments(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"shipments": shipments,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// @Summary      Get a shipment
// @Tags         shipments
// @Produce      json
// @Param        id path string true "Shipment ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	shipment, err := h.shipmentService.GetShipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, shipment))
}

// @Summary      Get a shipment's fee breakdown
// @Description  Schema-ordered cost/price/profit rows with currency symbols, for document export
// @Tags         shipments
// @Produce      json
// @Param        id path string true "Shipment ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments/{id}/breakdown [get]
func (h *ShipmentHandler) GetBreakdown(c *gin.Context) {
	export, err := h.exportService.ShipmentBreakdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, export))
}

// @Summary      List client names
// @Description  Distinct client names for the filter dropdown
// @Tags         shipments
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments/clients [get]
func (h *ShipmentHandler) ListClients(c *gin.Context) {
	clients, err := h.shipmentService.ListClients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, clients))
}

// @Summary      Create a shipment record
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateShipmentRequest true "Shipment payload"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments [post]
func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req service.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	shipment, err := h.shipmentService.CreateShipment(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, shipment))
}

// @Summary      Update a shipment record
// @Description  Partial update: absent fields are left untouched
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Shipment ID"
// @Param        payload body service.UpdateShipmentRequest true "Fields to update"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	var req service.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	shipment, err := h.shipmentService.UpdateShipment(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, shipment))
}

// @Summary      Delete a shipment record
// @Tags         shipments
// @Produce      json
// @Param        id path string true "Shipment ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	if err := h.shipmentService.DeleteShipment(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// @Summary      Delete multiple shipment records
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        payload body bulkDeleteRequest true "Shipment IDs"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/shipments/bulk-delete [post]
func (h *ShipmentHandler) BulkDeleteShipments(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.shipmentService.DeleteShipments(c.Request.Context(), c.GetString("userID"), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": len(req.IDs)}))
}
