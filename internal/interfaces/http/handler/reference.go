package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/infrastructure/export"
	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves one reference list. The same handler type backs
// every entity; what differs is the service's descriptor.
type ReferenceHandler[T any] struct {
	BaseHandler
	path string
	svc  refdata.Service[T]
	cfg  refdata.Config[T]
}

// NewReferenceHandler creates a handler mounted at path, e.g. "/vehicle-types"
func NewReferenceHandler[T any](path string, svc refdata.Service[T]) *ReferenceHandler[T] {
	return &ReferenceHandler[T]{path: path, svc: svc, cfg: svc.Descriptor()}
}

// RegisterRoutes mounts list, create, update, delete and export under the handler path
func (h *ReferenceHandler[T]) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(h.path)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("", h.Update)
	g.DELETE("", h.Delete)
	g.GET("/export", h.Export)
}

// List godoc
// @Summary  List the company's records
// @Router   /{entity} [get]
func (h *ReferenceHandler[T]) List(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.cfg.ResponsePropName: items})
}

// Create godoc
// @Summary  Create a record under its normalized key
// @Success  201 {object} map[string]any
// @Failure  400,403,409,500 {object} dto.ErrorResponse
// @Router   /{entity} [post]
func (h *ReferenceHandler[T]) Create(c *gin.Context) {
	caller, ok := h.authorized(c, refdata.OpCreate)
	if !ok {
		return
	}

	rec := new(T)
	if err := c.ShouldBindJSON(rec); err != nil {
		h.InvalidJSON(c)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), caller, rec)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":              fmt.Sprintf("%s created successfully", h.cfg.Label()),
		h.cfg.SingularPropName: created,
	})
}

// Update godoc
// @Summary  Replace the record at the old key, possibly under a new key
// @Param    body body object true "{old<Entity>: {key}, new<Entity>: record}"
// @Success  200 {object} map[string]any
// @Failure  400,403,404,409,500 {object} dto.ErrorResponse
// @Router   /{entity} [put]
func (h *ReferenceHandler[T]) Update(c *gin.Context) {
	caller, ok := h.authorized(c, refdata.OpUpdate)
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		h.InvalidJSON(c)
		return
	}

	old, err := decodeRecord[T](body[h.cfg.OldPropName()])
	if err != nil {
		h.InvalidJSON(c)
		return
	}
	next, err := decodeRecord[T](body[h.cfg.NewPropName()])
	if err != nil {
		h.InvalidJSON(c)
		return
	}

	var oldKey string
	if old != nil {
		oldKey = h.cfg.Key.Get(old)
	}

	updated, err := h.svc.Update(c.Request.Context(), caller, oldKey, next)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":              fmt.Sprintf("%s updated successfully", h.cfg.Label()),
		h.cfg.SingularPropName: updated,
	})
}

// Delete godoc
// @Summary  Delete the record named by the key query parameter
// @Success  200 {object} dto.MessageResponse
// @Failure  400,403,404,409,500 {object} dto.ErrorResponse
// @Router   /{entity} [delete]
func (h *ReferenceHandler[T]) Delete(c *gin.Context) {
	caller, ok := h.authorized(c, refdata.OpDelete)
	if !ok {
		return
	}

	key := c.Query(h.cfg.Key.ParamName())
	if err := h.svc.Delete(c.Request.Context(), caller, key); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", h.cfg.Label())})
}

// Export godoc
// @Summary  Download the company's records as a workbook
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router   /{entity}/export [get]
func (h *ReferenceHandler[T]) Export(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	columns := h.cfg.ExportColumns()
	rows, err := export.Rows(items, columns)
	if err != nil {
		h.HandleError(c, shared.NewInternalError("Failed to export "+h.cfg.EntityPlural, err))
		return
	}
	buf, err := export.WriteXLSX(h.cfg.ResponsePropName, columns, rows)
	if err != nil {
		h.HandleError(c, shared.NewInternalError("Failed to export "+h.cfg.EntityPlural, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, h.cfg.ResponsePropName))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// authorized checks the caller's role before the body is read, so a
// forbidden caller learns nothing about payload validity.
func (h *ReferenceHandler[T]) authorized(c *gin.Context, op refdata.Operation) (refdata.Caller, bool) {
	caller, ok := h.caller(c)
	if !ok {
		return refdata.Caller{}, false
	}
	if err := h.svc.Authorize(caller, op); err != nil {
		h.HandleError(c, err)
		return refdata.Caller{}, false
	}
	return caller, true
}

// decodeRecord decodes one side of an update body; a missing or null side is nil
func decodeRecord[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	rec := new(T)
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
