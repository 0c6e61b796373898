package controller

import (
	"errors"
	"log"
	"time"

	"farm-market-session/dto"
	"farm-market-session/middleware"
	"farm-market-session/model"
	"farm-market-session/service"
	"farm-market-session/util"

	"github.com/gofiber/fiber/v2"
)

// SessionController provides handlers for the session lifecycle
type SessionController struct {
	svc *service.SessionService
	now func() time.Time
}

func NewSessionController(s *service.SessionService) *SessionController {
	return &SessionController{svc: s, now: time.Now}
}

// Establish godoc
// @Summary      Establish the session
// @Description  Accepts the AuthResponse returned by the authentication service, verifies the token and checks it against the user record. Replaces any previous session.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        payload body dto.AuthResponse true "AuthResponse from the authentication service"
// @Success      201  {object}  dto.SessionView
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string "Token could not be verified or is expired"
// @Failure      422  {object}  map[string]string "User record does not match the token"
// @Failure      429  {object}  map[string]string
// @Router       /session [post]
func (sc *SessionController) Establish(c *fiber.Ctx) error {
	var req dto.AuthResponse
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}

	state, err := sc.svc.Establish(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResponse):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, util.ErrInvalidToken):
			log.Printf("[SESSION] rejected token from %s: %v", c.IP(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token", "message": "please sign in again"})
		case errors.Is(err, service.ErrInconsistentSession):
			log.Printf("[SESSION] rejected inconsistent session from %s: %v", c.IP(), err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSessionView(*state))
}

// Current godoc
// @Summary      Get the active session
// @Description  Returns the active session. Responds 401 when nobody is signed in or the token has expired.
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Failure      401  {object}  map[string]string
// @Router       /session [get]
func (sc *SessionController) Current(c *fiber.Ctx) error {
	state, ok := c.Locals(middleware.LocalsSession).(*model.SessionState)
	if !ok || state == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no active session"})
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewSessionView(*state))
}

// Clear godoc
// @Summary      Sign out
// @Description  Discards the active session. Always succeeds.
// @Tags         session
// @Success      204
// @Router       /session [delete]
func (sc *SessionController) Clear(c *fiber.Ctx) error {
	sc.svc.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

// Decode godoc
// @Summary      Decode a token
// @Description  Verifies a token and returns its payload without touching the session.
// @Tags         token
// @Accept       json
// @Produce      json
// @Param        payload body dto.DecodeRequest true "Token to decode"
// @Success      200  {object}  dto.DecodeResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /token/decode [post]
func (sc *SessionController) Decode(c *fiber.Ctx) error {
	var req dto.DecodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payload, err := sc.svc.Decode(req.Token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.DecodeResponse{
		Payload: *payload,
		Expired: payload.IsExpired(sc.now()),
	})
}
