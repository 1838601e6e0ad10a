package handlers

import (
	"net/http"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// --- Services ---

// CreateService handles POST /api/v1/salons/{salonID}/services
// @Summary      Add service
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID  path      string                       true  "Salon ID"
// @Param        request  body      models.CreateServiceRequest  true  "Service"
// @Success      201      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/services [post]
func (h *Handlers) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	svc, err := h.services.Catalog.CreateService(r.Context(), actorFromContext(r.Context()), pathVar(r, "salonID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create service")
		return
	}
	writeCreated(w, h.app, svc, "Service created successfully")
}

func (h *Handlers) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.Catalog.ListServices(r.Context(), pathVar(r, "salonID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch services")
		return
	}
	writeSuccess(w, h.app, services, "Services retrieved successfully")
}

func (h *Handlers) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.services.Catalog.GetService(r.Context(), pathVar(r, "salonID"), pathVar(r, "serviceID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch service")
		return
	}
	writeSuccess(w, h.app, svc, "Service retrieved successfully")
}

// UpdateService handles PUT /api/v1/salons/{salonID}/services/{serviceID}
func (h *Handlers) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateServiceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.Catalog.UpdateService(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "serviceID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update service")
		return
	}
	h.writeUpdateResult(w, result.Changed, result, "Service")
}

func (h *Handlers) DeleteService(w http.ResponseWriter, r *http.Request) {
	err := h.services.Catalog.DeleteService(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "serviceID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to delete service")
		return
	}
	writeSuccess(w, h.app, nil, "Service deleted successfully")
}

// --- Products ---

// CreateProduct handles POST /api/v1/salons/{salonID}/products
// @Summary      Add product
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID  path      string                       true  "Salon ID"
// @Param        request  body      models.CreateProductRequest  true  "Product"
// @Success      201      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/products [post]
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.services.Catalog.CreateProduct(r.Context(), actorFromContext(r.Context()), pathVar(r, "salonID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create product")
		return
	}
	writeCreated(w, h.app, product, "Product created successfully")
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.services.Catalog.ListProducts(r.Context(), pathVar(r, "salonID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch products")
		return
	}
	writeSuccess(w, h.app, products, "Products retrieved successfully")
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.Catalog.GetProduct(r.Context(), pathVar(r, "salonID"), pathVar(r, "productID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch product")
		return
	}
	writeSuccess(w, h.app, product, "Product retrieved successfully")
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.Catalog.UpdateProduct(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "productID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update product")
		return
	}
	h.writeUpdateResult(w, result.Changed, result, "Product")
}

// AdjustStock handles POST /api/v1/salons/{salonID}/products/{productID}/stock
// @Summary      Adjust stock
// @Description  Adds a positive delta or removes a negative one. Stock never drops below zero.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID    path      string                     true  "Salon ID"
// @Param        productID  path      string                     true  "Product ID"
// @Param        request    body      models.AdjustStockRequest  true  "Delta"
// @Success      200        {object}  map[string]interface{}
// @Failure      422        {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/products/{productID}/stock [post]
func (h *Handlers) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req models.AdjustStockRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.services.Catalog.AdjustStock(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "productID"), req.Delta)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to adjust stock")
		return
	}
	writeSuccess(w, h.app, product, "Stock adjusted successfully")
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.services.Catalog.DeleteProduct(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "productID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to delete product")
		return
	}
	writeSuccess(w, h.app, nil, "Product deleted successfully")
}
