package slot

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/domain"
	"tablebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.ListSlots)
	rg.GET("/slots/:id", h.GetSlot)
	rg.GET("/priorities", h.ListPriorities)
	rg.GET("/businesses", h.ListBusinesses)
	rg.GET("/businesses/:id", h.GetBusiness)
	rg.GET("/businesses/:id/availability", h.Availability)
}

// RegisterProtectedRoutes mounts the operator-only slot mutations.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/slots", h.CreateSlot)
	rg.PUT("/slots/:id", h.UpdateSlot)
	rg.DELETE("/slots/:id", h.DeleteSlot)
}

func (h *Handler) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sl, err := h.service.CreateSlot(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"slot": sl})
}

func (h *Handler) GetSlot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sl, err := h.service.GetSlot(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": sl})
}

func (h *Handler) ListSlots(c *gin.Context) {
	var businessID *int64
	if raw := c.Query("business_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid business_id")
			return
		}
		businessID = &v
	}

	var status *domain.SlotStatus
	if raw := c.Query("status"); raw != "" {
		st := domain.SlotStatus(raw)
		status = &st
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	slots, err := h.service.ListSlots(c.Request.Context(), businessID, status, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) UpdateSlot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sl, err := h.service.UpdateSlot(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": sl})
}

func (h *Handler) DeleteSlot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSlot(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListPriorities(c *gin.Context) {
	list, err := h.service.ListPriorities(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"priorities": list})
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListBusinesses(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"businesses": list})
}

func (h *Handler) GetBusiness(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	biz, err := h.service.GetBusiness(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"business": biz})
}

func (h *Handler) Availability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	interval, _ := strconv.Atoi(c.DefaultQuery("interval", "30"))

	out, err := h.service.Availability(c.Request.Context(), id, interval)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid slot parameters")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
	case ErrBusinessNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
	case ErrPriorityNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown priority tier")
	case ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Slot status transition not permitted")
	case ErrSlotInUse:
		response.Error(c, http.StatusConflict, "CONFLICT", "Slot has active reservations and cannot be deleted")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
