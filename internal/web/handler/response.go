package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/apperr"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    any             `json:"data,omitempty"`
	Errors  []ErrorResponse `json:"errors,omitempty"`
}

// SendSuccess writes a success envelope with status.
func SendSuccess(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Success: true, Message: message, Data: data})
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, message string, data any) error {
	return SendSuccess(c, fiber.StatusOK, message, data)
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, message string, data any) error {
	return SendSuccess(c, fiber.StatusCreated, message, data)
}

// StatusOf maps err to its http status and client message.
func StatusOf(err error) (int, string) {
	msg, classified := apperr.Message(err)

	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrForbidden):
		return fiber.StatusBadRequest, msg
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound, msg
	case errors.Is(err, apperr.ErrConflict):
		return fiber.StatusConflict, msg
	case classified:
		return fiber.StatusBadRequest, msg
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict, "Resource already exists"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fiber.StatusBadRequest, "Referenced resource does not exist"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, "Resource not found"
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	return fiber.StatusInternalServerError, MsgInternalError
}

// SendError writes the error envelope for err.
func SendError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(Response{
			Message: ve.Error(),
			Errors:  ve.Fields,
		})
	}

	status, msg := StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(status).JSON(Response{Message: msg})
}
