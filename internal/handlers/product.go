package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse/internal/models"
	"warehouse/internal/mykafka"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/internal/util"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ProductHandler struct {
	Repo     *repository.ProductRepo
	List     *service.ProductList
	Producer *mykafka.Producer
}

type productRequest struct {
	ID          uint   `json:"id"          form:"id"`
	Name        string `json:"name"        form:"name"`
	Quantity    int    `json:"quantity"    form:"quantity"`
	Description string `json:"description" form:"description"`
}

func errorResponse(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: message,
	})
}

func validationResponse(c echo.Context, errs map[string]string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"status": "error",
		"errors": errs,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseBoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ProductHandler) Index(c echo.Context) error {
	pageNumber := util.ClampPage(parseIntDefault(c.QueryParam("pageNumber"), 1))
	sortField := c.QueryParam("sortField")
	ascending := parseBoolDefault(c.QueryParam("ascending"), true)

	items, err := h.List.GetPage(c.Request().Context(), pageNumber, util.PageSize, sortField, ascending)
	if err != nil {
		c.Logger().Errorf("list products: %v", err)
		return errorResponse(c, http.StatusInternalServerError, "could not load products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":       items,
		"pageNumber": pageNumber,
		"pageSize":   util.PageSize,
		"sortField":  repository.SortColumn(sortField),
		"ascending":  ascending,
	})
}

func (h *ProductHandler) Details(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Repo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "product not found")
		}
		c.Logger().Errorf("get product: %v", err)
		return errorResponse(c, http.StatusInternalServerError, "could not load product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Product{})
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	if errs := validateProduct(&req); len(errs) > 0 {
		return validationResponse(c, errs)
	}

	product := models.Product{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
	}

	if err := h.Repo.Create(c.Request().Context(), &product); err != nil {
		c.Logger().Errorf("create product: %v", err)
		return errorResponse(c, http.StatusInternalServerError, "could not create product")
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.Redirect(http.StatusSeeOther, "/Product/Index")
}

func (h *ProductHandler) EditForm(c echo.Context) error {
	return h.Details(c)
}

func (h *ProductHandler) Edit(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	if req.ID != 0 && req.ID != uint(id) {
		return errorResponse(c, http.StatusNotFound, "product id mismatch")
	}

	if errs := validateProduct(&req); len(errs) > 0 {
		return validationResponse(c, errs)
	}

	product := models.Product{
		ID:          uint(id),
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
	}

	if err := h.Repo.Update(c.Request().Context(), &product); err != nil {
		c.Logger().Errorf("update product: %v", err)
		return errorResponse(c, http.StatusInternalServerError, "could not update product")
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.Redirect(http.StatusSeeOther, "/Product/Index")
}

func (h *ProductHandler) DeleteForm(c echo.Context) error {
	return h.Details(c)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Repo.Delete(c.Request().Context(), uint(id)); err != nil {
		c.Logger().Errorf("delete product: %v", err)
		return errorResponse(c, http.StatusInternalServerError, "could not delete product")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": uint(id),
	})

	return c.Redirect(http.StatusSeeOther, "/Product/Index")
}

func (h *ProductHandler) Search(c echo.Context) error {
	namePart := c.QueryParam("namePart")
	if namePart == "" {
		return c.Redirect(http.StatusFound, "/Product/Index")
	}

	items, err := h.Repo.SearchByName(c.Request().Context(), namePart)
	if err != nil {
		c.Logger().Errorf("search products: %v", err)
		return errorResponse(c, http.StatusInternalServerError, "could not search products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"namePart": namePart,
		"data":     items,
	})
}

func (h *ProductHandler) Autocomplete(c echo.Context) error {
	term := c.QueryParam("term")

	items, err := h.Repo.SearchByName(c.Request().Context(), term)
	if err != nil {
		c.Logger().Errorf("autocomplete: %v", err)
		return errorResponse(c, http.StatusInternalServerError, "could not search products")
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	return c.JSON(http.StatusOK, names)
}

func validateProduct(req *productRequest) map[string]string {
	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	return errs
}
