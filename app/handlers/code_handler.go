package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/drawkit/luckydraw/app/dto"
	"github.com/drawkit/luckydraw/app/middleware"
	businessflow "github.com/drawkit/luckydraw/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CodeHandlerInterface defines the contract for code generation handlers
type CodeHandlerInterface interface {
	Generate(c fiber.Ctx) error
	List(c fiber.Ctx) error
	ListDetails(c fiber.Ctx) error
	Stats(c fiber.Ctx) error
	Reset(c fiber.Ctx) error
}

// CodeHandler handles code-related HTTP requests
type CodeHandler struct {
	flow      businessflow.CodeFlow
	validator *validator.Validate
}

// NewCodeHandler creates a new code handler
func NewCodeHandler(flow businessflow.CodeFlow) CodeHandlerInterface {
	return &CodeHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *CodeHandler) errorResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(dto.ErrorResponse{Error: message})
}

// Generate handles POST /api/generate: one new 7-character code of the
// requested type, persisted with duplicate prevention.
func (h *CodeHandler) Generate(c fiber.Ctx) error {
	var req dto.GenerateCodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		var messages []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			messages = append(messages, getValidationErrorMessage(fieldErr))
		}
		return h.errorResponse(c, fiber.StatusBadRequest, strings.Join(messages, "; "))
	}

	ctx, cancel := h.createRequestContext(c)
	defer cancel()

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	res, err := h.flow.GenerateCode(ctx, &req, metadata)
	if err != nil {
		if businessflow.IsInvalidCodeType(err) {
			return h.errorResponse(c, fiber.StatusBadRequest, "Type must be alphabetic or alphanumeric")
		}
		log.Println("Code generation failed", err)
		return h.errorResponse(c, fiber.StatusInternalServerError, "Failed to generate code")
	}

	middleware.RecordCodeGenerated(res.Type)
	return c.Status(fiber.StatusOK).JSON(res)
}

// List handles GET /api/codes
func (h *CodeHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c)
	defer cancel()

	res, err := h.flow.ListCodes(ctx)
	if err != nil {
		log.Println("List codes failed", err)
		return h.errorResponse(c, fiber.StatusInternalServerError, "Failed to list codes")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// ListDetails handles GET /api/codes/details
func (h *CodeHandler) ListDetails(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c)
	defer cancel()

	res, err := h.flow.ListCodeDetails(ctx)
	if err != nil {
		log.Println("List code details failed", err)
		return h.errorResponse(c, fiber.StatusInternalServerError, "Failed to list code details")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// Stats handles GET /api/stats
func (h *CodeHandler) Stats(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c)
	defer cancel()

	res, err := h.flow.GetStats(ctx)
	if err != nil {
		log.Println("Stats failed", err)
		return h.errorResponse(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// Reset handles POST /api/reset
func (h *CodeHandler) Reset(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c)
	defer cancel()

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	res, err := h.flow.Reset(ctx, metadata)
	if err != nil {
		log.Println("Reset failed", err)
		return h.errorResponse(c, fiber.StatusInternalServerError, "Failed to reset codes: "+err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *CodeHandler) createRequestContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	ctx = context.WithValue(ctx, businessflow.RequestIDKey, c.Get("X-Request-ID"))
	return ctx, cancel
}
