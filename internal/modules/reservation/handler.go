package reservation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/pkg/response"
	"tablebook/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations", h.MyReservations)
	rg.GET("/reservations/:id", h.GetReservation)
	rg.PUT("/reservations/:id", h.EditReservation)
	rg.PATCH("/reservations/:id/cancel", h.CancelReservation)
	rg.PATCH("/reservations/:id/complete", h.CompleteReservation)
	rg.GET("/businesses/:id/tables", h.EligibleTables)
}

func (h *Handler) EligibleTables(c *gin.Context) {
	businessID, ok := pathID(c)
	if !ok {
		return
	}

	partySize, err := strconv.Atoi(c.DefaultQuery("party_size", "2"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid party_size")
		return
	}

	tables, err := h.service.ListEligibleTables(c.Request.Context(), businessID, partySize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tables": tables})
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation parameters", fields)
		return
	}

	res, err := h.service.CreateReservation(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) MyReservations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.MyReservations(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) EditReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.EditReservation(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelReservationRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.service.CancelReservation(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) CompleteReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.CompleteReservation(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var notEligible *NotEligibleError
	switch {
	case err == ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation parameters")
	case err == ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case err == ErrTableNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Table not found")
	case err == ErrSlotNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not found")
	case err == ErrConflict:
		// Distinct from validation so the client prompts re-selection
		// instead of retrying the same table blindly.
		response.Error(c, http.StatusConflict, "CONFLICT", "The table was just taken for this time; please pick another")
	case err == ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Reservation state does not permit this operation")
	case err == ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to manage this reservation")
	case asNotEligible(err, &notEligible):
		if notEligible.Reason == ReasonCapacityExceeded {
			response.Error(c, http.StatusUnprocessableEntity, "CAPACITY_EXCEEDED", "No table can seat a party of this size")
		} else {
			response.Error(c, http.StatusUnprocessableEntity, "NO_AVAILABILITY", "No eligible table is available at the requested time")
		}
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func asNotEligible(err error, target **NotEligibleError) bool {
	ne, ok := err.(*NotEligibleError)
	if ok {
		*target = ne
	}
	return ok
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
