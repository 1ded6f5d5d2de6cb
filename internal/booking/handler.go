package booking

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/api"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/auth"
)

// Proof uploads are images of bank-transfer receipts; 5 MiB is plenty.
const maxProofSize = 5 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), api.ErrorResponse{Error: err.Error()})
}

// Create godoc
// @Summary      Create a manual-payment booking
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateRequest  true  "Booking data"
// @Success      201   {object}  CreateResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, snap, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateResponse{Booking: b, Catalog: snap})
}

// UploadProof godoc
// @Summary      Upload a bank-transfer proof
// @Tags         bookings
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Param        proof      formData  file    true  "Proof image"
// @Success      201        {object}  PaymentProof
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Failure      410        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/proof [post]
func (h *Handler) UploadProof(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "proof file is required"})
		return
	}
	if fileHeader.Size > maxProofSize {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "proof file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to read proof file"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to read proof file"})
		return
	}

	proof, err := h.service.UploadProof(c.Request.Context(), userID, c.Param("bookingID"), image, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, proof)
}

// ListMine godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Detail godoc
// @Summary      Booking detail
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  Detail
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID} [get]
func (h *Handler) Detail(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), userID, c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// AdminList godoc
// @Summary      List bookings
// @Description  Lists all bookings, optionally filtered by status. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {array}   Booking
// @Failure      500     {object}  api.ErrorResponse
// @Router       /admin/bookings [get]
func (h *Handler) AdminList(c *gin.Context) {
	bookings, err := h.service.AdminList(c.Request.Context(), Status(c.Query("status")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// AdminDetail godoc
// @Summary      Booking detail with proofs
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  Detail
// @Failure      404        {object}  api.ErrorResponse
// @Router       /admin/bookings/{bookingID} [get]
func (h *Handler) AdminDetail(c *gin.Context) {
	detail, err := h.service.AdminDetail(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Approve godoc
// @Summary      Approve a payment proof
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	b, err := h.service.Approve(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// Reject godoc
// @Summary      Reject a payment proof
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      string         true  "Booking ID"
// @Param        body       body      RejectRequest  true  "Rejection reason"
// @Success      200        {object}  Booking
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.Reject(c.Request.Context(), c.Param("bookingID"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// AdminStatistics godoc
// @Summary      Booking statistics
// @Description  Counts per status and paid revenue. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Statistics
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/statistics [get]
func (h *Handler) AdminStatistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
