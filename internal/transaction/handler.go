package transaction

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/api"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/auth"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/logger"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/user"
)

const maxWebhookSize = 1 << 20

type Handler struct {
	service Service
	users   user.Repository
}

func NewHandler(service Service, users user.Repository) *Handler {
	return &Handler{service: service, users: users}
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), api.ErrorResponse{Error: err.Error()})
}

// Create godoc
// @Summary      Create a gateway-paid transaction
// @Description  Creates a pending transaction and returns a hosted-payment token.
// @Tags         transactions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateRequest  true  "Transaction data"
// @Success      201   {object}  Transaction
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Failure      502   {object}  api.ErrorResponse
// @Router       /transactions [post]
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

	u, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not found"})
		return
	}

	t, err := h.service.Create(c.Request.Context(), userID, Customer{Name: u.Name, Email: u.Email}, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// ListMine godoc
// @Summary      List my transactions
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Transaction
// @Failure      500  {object}  api.ErrorResponse
// @Router       /transactions [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	transactions, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// Detail godoc
// @Summary      Transaction detail with payment history
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        transactionID  path      string  true  "Transaction ID"
// @Success      200            {object}  Detail
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Router       /transactions/{transactionID} [get]
func (h *Handler) Detail(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Webhook godoc
// @Summary      Midtrans payment notification
// @Description  Unauthenticated; verified by payload signature. A non-2xx
// @Description  response makes the gateway redeliver.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /webhooks/midtrans [post]
func (h *Handler) Webhook(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to read body"})
		return
	}

	if err := h.service.IngestWebhook(c.Request.Context(), raw); err != nil {
		logger.Error("webhook rejected", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
