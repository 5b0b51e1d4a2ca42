package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/resourcehub/resource-api/internal/api/metrics"
	"github.com/resourcehub/resource-api/internal/core/domain"
	"github.com/resourcehub/resource-api/internal/core/ports"
)

// ResourceHandler handles HTTP requests for the resource collection. Routes
// are gated by the Authorize middleware before these methods run; errors
// returned here are mapped by the central error handler.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// List handles GET /v1/resources.
//
// @Summary      List resources
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResourcesResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/resources [get]
func (h *ResourceHandler) List(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	resources, err := h.service.List(c.Request().Context(), ident)
	if err != nil {
		return err
	}

	items := make([]resourceResponse, 0, len(resources))
	for _, r := range resources {
		items = append(items, toResourceResponse(r))
	}
	return c.JSON(http.StatusOK, listResourcesResponse{Items: items, Total: len(items)})
}

// Get handles GET /v1/resources/:id.
//
// @Summary      Retrieve a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource id"
// @Success      200  {object}  resourceResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/resources/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	resource, err := h.service.Get(c.Request().Context(), ident, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResourceResponse(resource))
}

// Create handles POST /v1/resources. Admin only.
//
// @Summary      Create a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createResourceRequest  true  "Resource details"
// @Success      201   {object}  resourceResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/resources [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createResourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	resource, err := h.service.Create(c.Request().Context(), ident, ports.CreateResourceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toResourceResponse(resource))
}

// Update handles PUT /v1/resources/:id — full replacement of the mutable
// fields. Admin or manager.
//
// @Summary      Update a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Resource id"
// @Param        body  body      updateResourceRequest  true  "Resource details"
// @Success      200   {object}  resourceResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/resources/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateResourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	resource, err := h.service.Update(c.Request().Context(), ident, c.Param("id"), ports.ResourceUpdate{
		Name:        &req.Name,
		Description: &req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toResourceResponse(resource))
}

// Patch handles PATCH /v1/resources/:id — partial update. Admin or manager.
//
// @Summary      Partially update a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Resource id"
// @Param        body  body      patchResourceRequest  true  "Fields to change"
// @Success      200   {object}  resourceResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/resources/{id} [patch]
func (h *ResourceHandler) Patch(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req patchResourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	resource, err := h.service.Update(c.Request().Context(), ident, c.Param("id"), ports.ResourceUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toResourceResponse(resource))
}

// Delete handles DELETE /v1/resources/:id. Admin only.
//
// @Summary      Delete a resource
// @Tags         resources
// @Security     BearerAuth
// @Param        id  path  string  true  "Resource id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/resources/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ident, c.Param("id")); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func toResourceResponse(r *domain.Resource) resourceResponse {
	return resourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CreatedBy:   r.CreatedBy,
	}
}
