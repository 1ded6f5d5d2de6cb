package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/api"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListTrips godoc
// @Summary      List active trips
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   Trip
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trips [get]
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.repo.ListTrips(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, trips)
}

// GetTrip godoc
// @Summary      Trip detail
// @Tags         catalog
// @Produce      json
// @Param        tripID  path      int  true  "Trip ID"
// @Success      200     {object}  Trip
// @Failure      404     {object}  api.ErrorResponse
// @Router       /trips/{tripID} [get]
func (h *Handler) GetTrip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tripID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trip ID"})
		return
	}

	trip, err := h.repo.GetTripByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), api.ErrorResponse{Error: "Trip not found"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

// ListTravels godoc
// @Summary      List active travel routes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   Travel
// @Failure      500  {object}  api.ErrorResponse
// @Router       /travels [get]
func (h *Handler) ListTravels(c *gin.Context) {
	travels, err := h.repo.ListTravels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch travels"})
		return
	}

	c.JSON(http.StatusOK, travels)
}

// GetTravel godoc
// @Summary      Travel route detail
// @Tags         catalog
// @Produce      json
// @Param        travelID  path      int  true  "Travel ID"
// @Success      200       {object}  Travel
// @Failure      404       {object}  api.ErrorResponse
// @Router       /travels/{travelID} [get]
func (h *Handler) GetTravel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("travelID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid travel ID"})
		return
	}

	travel, err := h.repo.GetTravelByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), api.ErrorResponse{Error: "Travel not found"})
		return
	}

	c.JSON(http.StatusOK, travel)
}
