package handlers

import (
	"fmt"

	"server/internal/app"
	adminController "server/internal/controllers/admin"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		controller: *app.AdminController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.AdminAuth())

	admin.Get("/", h.dashboard)
	admin.Get("/parents", h.listParents)
	admin.Get("/caregivers", h.listCaregivers)
	admin.Get("/newsletter", h.listNewsletter)
	admin.Get("/export/parents", h.exportParents)
	admin.Get("/export/caregivers", h.exportCaregivers)
	admin.Get("/export.csv", h.exportLegacy)
}

func (h *AdminHandler) dashboard(c *fiber.Ctx) error {
	log := h.log.Function("dashboard")

	dashboard, err := h.controller.GetDashboard(c.UserContext())
	if err != nil {
		log.Er("failed to build dashboard", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(dashboard)
}

func (h *AdminHandler) listParents(c *fiber.Ctx) error {
	log := h.log.Function("listParents")

	filter := parentFilterFromQuery(c)
	parents, stats, err := h.controller.ListParentLeads(c.UserContext(), filter)
	if err != nil {
		log.Er("failed to list parent leads", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load parent leads"})
	}

	return c.JSON(fiber.Map{
		"parents":          parents,
		"totalParents":     stats.TotalParents,
		"parentsThisWeek":  stats.ParentsThisWeek,
		"parentsThisMonth": stats.ParentsThisMonth,
		"filters":          filter,
		"locations":        ParentLocations,
	})
}

func (h *AdminHandler) listCaregivers(c *fiber.Ctx) error {
	log := h.log.Function("listCaregivers")

	filter := caregiverFilterFromQuery(c)
	caregivers, stats, err := h.controller.ListCaregiverApplications(c.UserContext(), filter)
	if err != nil {
		log.Er("failed to list caregiver applications", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load caregiver applications"})
	}

	return c.JSON(fiber.Map{
		"caregivers":          caregivers,
		"totalCaregivers":     stats.TotalCaregivers,
		"caregiversThisWeek":  stats.CaregiversThisWeek,
		"caregiversThisMonth": stats.CaregiversThisMonth,
		"filters":             filter,
		"experienceOptions":   ExperienceBuckets,
	})
}

func (h *AdminHandler) listNewsletter(c *fiber.Ctx) error {
	log := h.log.Function("listNewsletter")

	report, err := h.controller.GetNewsletterReport(c.UserContext())
	if err != nil {
		log.Er("failed to build newsletter report", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load newsletter subscribers"})
	}

	return c.JSON(report)
}

func (h *AdminHandler) exportParents(c *fiber.Ctx) error {
	log := h.log.Function("exportParents")

	filename, data, err := h.controller.ExportParentLeads(c.UserContext(), parentFilterFromQuery(c))
	if err != nil {
		log.Er("failed to export parent leads", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to export data")
	}

	return sendCSV(c, filename, data)
}

func (h *AdminHandler) exportCaregivers(c *fiber.Ctx) error {
	log := h.log.Function("exportCaregivers")

	filename, data, err := h.controller.ExportCaregiverApplications(c.UserContext(), caregiverFilterFromQuery(c))
	if err != nil {
		log.Er("failed to export caregiver applications", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to export data")
	}

	return sendCSV(c, filename, data)
}

// exportLegacy keeps the old single-endpoint export working: typed exports
// redirect to the current routes, newsletter still streams inline.
func (h *AdminHandler) exportLegacy(c *fiber.Ctx) error {
	log := h.log.Function("exportLegacy")

	switch c.Query("type") {
	case "parents":
		return c.Redirect("/admin/export/parents", fiber.StatusFound)
	case "caregivers":
		return c.Redirect("/admin/export/caregivers", fiber.StatusFound)
	case "newsletter":
		filename, data, err := h.controller.ExportNewsletter(c.UserContext())
		if err != nil {
			log.Er("failed to export newsletter subscribers", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to export data")
		}
		return sendCSV(c, filename, data)
	default:
		return c.Status(fiber.StatusBadRequest).
			SendString("Invalid export type. Use ?type=parents, ?type=caregivers, or ?type=newsletter")
	}
}

func parentFilterFromQuery(c *fiber.Ctx) ParentLeadFilter {
	return ParentLeadFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Location:  c.Query("location"),
	}
}

func caregiverFilterFromQuery(c *fiber.Ctx) CaregiverApplicationFilter {
	return CaregiverApplicationFilter{
		StartDate:       c.Query("start_date"),
		EndDate:         c.Query("end_date"),
		ExperienceYears: c.Query("experience"),
		Certification:   c.Query("certification"),
	}
}

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
