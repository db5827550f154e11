package handlers

import (
	"staffsync/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemberHandler serves the email verification and sign-up endpoints.
type MemberHandler struct {
	memberService *services.MemberService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *services.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		validate:      newValidator(),
		logger:        logger,
	}
}

// RegisterRoutes registers the member routes. All of them are public.
func (h *MemberHandler) RegisterRoutes(router fiber.Router) {
	memberRoutes := router.Group("/members")
	memberRoutes.Post("/send-code", h.SendCode)
	memberRoutes.Post("/verify-code", h.VerifyCode)
	memberRoutes.Get("/code-time", h.CodeTime)
	memberRoutes.Post("/register", h.Register)
}

// queryEmail reads and checks the email query parameter. On failure it writes the
// response and returns false.
func (h *MemberHandler) queryEmail(c *fiber.Ctx) (string, bool, error) {
	email := c.Query("email")
	if err := h.validate.Var(email, "required,email"); err != nil {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "a valid email query parameter is required",
			"field":   "email",
		})
	}
	return email, true, nil
}

// SendCode handles POST /members/send-code?email=.
func (h *MemberHandler) SendCode(c *fiber.Ctx) error {
	email, ok, err := h.queryEmail(c)
	if !ok {
		return err
	}
	if err := h.memberService.RequestVerification(c.UserContext(), email); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message": "Verification code sent",
	})
}

// VerifyCode handles POST /members/verify-code?email=&code=.
func (h *MemberHandler) VerifyCode(c *fiber.Ctx) error {
	email, ok, err := h.queryEmail(c)
	if !ok {
		return err
	}
	verified, err := h.memberService.VerifyCode(c.UserContext(), email, c.Query("code"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"verified": verified,
	})
}

// CodeTime reports the seconds left on the pending code for email.
func (h *MemberHandler) CodeTime(c *fiber.Ctx) error {
	email, ok, err := h.queryEmail(c)
	if !ok {
		return err
	}
	remaining, err := h.memberService.RemainingTime(c.UserContext(), email)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"remainingSeconds": remaining,
	})
}

// Register creates a member from a verified email.
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterMemberInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	member, err := h.memberService.Register(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}
