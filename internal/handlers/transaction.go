package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"fraudwatch/internal/models"
	"fraudwatch/internal/services/transaction"
	"fraudwatch/internal/utils/response"
	"fraudwatch/internal/validation"
)

type TransactionHandler struct {
	service transaction.Service
}

func NewTransactionHandler(service transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// CreateTransaction handles POST /transactions: validate, screen, persist.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var payload models.NewTransactionPayload
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validation.ValidatePayload(&payload); err != nil {
		return response.BadRequest(c, err.Error())
	}

	tx, err := h.service.Ingest(c.UserContext(), &payload)
	if err != nil {
		log.Printf("ingest failed for user %s: %v", payload.UserID, err)
		if errors.Is(err, transaction.ErrEvaluationFailed) {
			return response.ServerError(c, "Fraud screening unavailable")
		}
		return response.ServerError(c, "Failed to persist transaction")
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

// GetSuspiciousTransactions handles GET /transactions/suspicious/:user_id.
func (h *TransactionHandler) GetSuspiciousTransactions(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return response.BadRequest(c, "User ID is required")
	}

	transactions, err := h.service.SuspiciousForUser(c.UserContext(), userID)
	if err != nil {
		log.Printf("suspicious listing failed for user %s: %v", userID, err)
		return response.ServerError(c, "Failed to retrieve transactions")
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return c.JSON(transactions)
}
