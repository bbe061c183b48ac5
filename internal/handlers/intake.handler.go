package handlers

import (
	"errors"

	"server/internal/app"
	intakeController "server/internal/controllers/intake"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const thankYouPath = "/thank-you"

const genericFailureMessage = "Sorry, something went wrong. Please try again or email us directly."

type IntakeHandler struct {
	Handler
	controller intakeController.IntakeController
	stats      repositories.StatsRepository
}

func NewIntakeHandler(app app.App, router fiber.Router) *IntakeHandler {
	log := logger.New("handlers").File("intake_handler")
	return &IntakeHandler{
		controller: *app.IntakeController,
		stats:      app.StatsRepo,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *IntakeHandler) Register() {
	formLimiter := h.middleware.FormLimiter()
	strictLimiter := h.middleware.StrictLimiter()

	h.router.Post("/parents", formLimiter, strictLimiter, h.submitParentLead)
	h.router.Post("/caregivers", formLimiter, strictLimiter, h.submitCaregiverApplication)
	h.router.Post("/newsletter", formLimiter, h.subscribeNewsletter)
	h.router.Get("/stats", h.getStats)
}

func (h *IntakeHandler) submitParentLead(c *fiber.Ctx) error {
	log := h.log.Function("submitParentLead")

	var form validation.ParentLeadForm
	if err := c.BodyParser(&form); err != nil {
		log.Er("failed to parse parent lead form", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"ok": false, "message": "Invalid submission"})
	}

	_, err := h.controller.SubmitParentLead(c.UserContext(), form, h.submissionMeta(c))
	if err != nil {
		return h.submissionError(c, err)
	}

	return c.Redirect(thankYouPath, fiber.StatusFound)
}

func (h *IntakeHandler) submitCaregiverApplication(c *fiber.Ctx) error {
	log := h.log.Function("submitCaregiverApplication")

	var form validation.CaregiverApplicationForm
	if err := c.BodyParser(&form); err != nil {
		log.Er("failed to parse caregiver application form", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"ok": false, "message": "Invalid submission"})
	}

	_, err := h.controller.SubmitCaregiverApplication(c.UserContext(), form, h.submissionMeta(c))
	if err != nil {
		return h.submissionError(c, err)
	}

	return c.Redirect(thankYouPath, fiber.StatusFound)
}

func (h *IntakeHandler) subscribeNewsletter(c *fiber.Ctx) error {
	log := h.log.Function("subscribeNewsletter")

	var form validation.NewsletterForm
	if err := c.BodyParser(&form); err != nil {
		log.Er("failed to parse newsletter form", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"ok": false, "message": "Invalid submission"})
	}

	if err := h.controller.Subscribe(c.UserContext(), form); err != nil {
		return h.submissionError(c, err)
	}

	return c.Redirect(thankYouPath, fiber.StatusFound)
}

func (h *IntakeHandler) getStats(c *fiber.Ctx) error {
	log := h.log.Function("getStats")

	stats, err := h.stats.GetStats(c.UserContext())
	if err != nil {
		log.Er("failed to get stats", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to retrieve stats"})
	}

	return c.JSON(stats)
}

func (h *IntakeHandler) submissionMeta(c *fiber.Ctx) intakeController.SubmissionMeta {
	return intakeController.SubmissionMeta{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IPAddr:    c.IP(),
	}
}

// submissionError maps controller failures to responses: validation
// failures carry their field list, anything else gets the generic message
// with the detail kept server-side.
func (h *IntakeHandler) submissionError(c *fiber.Ctx, err error) error {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": validationErr.Message,
			"errors":  validationErr.Errors,
		})
	}

	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"ok": false, "message": genericFailureMessage})
}
