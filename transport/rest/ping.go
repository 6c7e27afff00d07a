package rest

import "github.com/gofiber/fiber/v2"

func (that *Server) ping(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("pong")
}
