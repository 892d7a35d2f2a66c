// Package tools implements the REST API handlers for the Guardian chat and the image tools.
package tools

import (
	"encoding/base64"
	"errors"

	"github.com/aishield/shield-backend/internal/narrative"
	"github.com/aishield/shield-backend/internal/services"
	"github.com/aishield/shield-backend/model"
	"github.com/gofiber/fiber/v2"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidImageRequest),
		errors.Is(err, narrative.ErrMissingImage):
		return fiber.StatusBadRequest
	case errors.Is(err, narrative.ErrServiceUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusBadGateway
}

// PostChat sends one Guardian chat turn
func PostChat(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		resp, err := d.Chat(c.UserContext(), req.SessionID, req.Message)
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{
				"error":      err.Error(),
				"session_id": resp.SessionID,
			})
		}
		return c.JSON(resp)
	}
}

// PostAnalyzeImage runs a threat analysis over a base64 screenshot
func PostAnalyzeImage(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.AnalyzeImageRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "image_base64 is not valid base64")
		}
		art, err := d.AnalyzeImage(c.UserContext(), data, req.MIMEType, req.Prompt)
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(art)
	}
}

// PostGenerateImage renders a defense visual
func PostGenerateImage(d *services.Dashboard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.GenerateImageRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		img, err := d.GenerateImage(c.UserContext(), req.Prompt, req.Size)
		if err != nil {
			return fail(c, statusFor(err), err.Error())
		}
		return c.JSON(model.GenerateImageResponse{
			MIMEType:   img.MIMEType,
			DataBase64: base64.StdEncoding.EncodeToString(img.Data),
		})
	}
}
