package staff

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tablebook/internal/pkg/response"
)

type Handler struct {
	service      *Service
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewHandler(service *Service, pollInterval, pollTimeout time.Duration) *Handler {
	return &Handler{service: service, pollInterval: pollInterval, pollTimeout: pollTimeout}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/join-requests", h.CreateJoinRequest)
	rg.GET("/join-requests", h.ListJoinRequests)
	rg.GET("/join-requests/:id", h.GetJoinRequest)
	rg.GET("/join-requests/:id/wait", h.WaitJoinRequest)
	rg.PATCH("/join-requests/:id", h.ResolveJoinRequest)
}

func (h *Handler) CreateJoinRequest(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.CreateJoinRequest(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"join_request": j})
}

func (h *Handler) GetJoinRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	j, err := h.service.GetJoinRequest(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"join_request": j})
}

func (h *Handler) ListJoinRequests(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Query("business_id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid business_id")
		return
	}

	list, err := h.service.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"join_requests": list})
}

// WaitJoinRequest long-polls until the request resolves or the configured
// timeout passes. A timed-out wait still returns 200 with the pending state.
func (h *Handler) WaitJoinRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.AwaitResolution(c.Request.Context(), id, h.pollInterval, h.pollTimeout)
	if err != nil && res == nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"join_request": res.Request,
		"elapsed_ms":   res.Elapsed.Milliseconds(),
		"timed_out":    res.TimedOut,
	})
}

func (h *Handler) ResolveJoinRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ResolveJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var approve bool
	switch req.Action {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Action must be approve or reject")
		return
	}

	actor := c.GetString("username")
	j, err := h.service.Resolve(c.Request.Context(), id, actor, approve)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"join_request": j})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid join request parameters")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Join request not found")
	case ErrBusinessNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
	case ErrDuplicateRequest:
		response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "A pending request already exists for this business")
	case ErrAlreadyResolved:
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Join request is already resolved")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the named supervisor may resolve this request")
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
