package server

import (
	"inkpulse/internal/models"
	"inkpulse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/user
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	// Password hash is never part of the response.
	return c.JSON(fiber.Map{
		"message": "User created",
		"data": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// GetUser handles GET /api/user?email=
func (s *Server) GetUser(c *fiber.Ctx) error {
	email := c.Query("email")

	user, err := s.userService.GetByEmail(c.UserContext(), email)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User fetched",
		"data":    user,
	})
}

// UpdateProfile handles PUT /api/user
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Email           string `json:"email"`
		Name            string `json:"name"`
		Niche           string `json:"niche"`
		Bio             string `json:"bio"`
		ProfilePic      string `json:"profilePic"`
		ProfileComplete *bool  `json:"profileComplete"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		Email:           req.Email,
		Name:            req.Name,
		Niche:           req.Niche,
		Bio:             req.Bio,
		ProfilePic:      req.ProfilePic,
		ProfileComplete: req.ProfileComplete,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"data":    user,
	})
}

// DeleteUser handles DELETE /api/user?email=
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	email := c.Query("email")

	if err := s.userService.DeleteByEmail(c.UserContext(), email); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}
