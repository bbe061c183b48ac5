package adminController

import (
	"context"

	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
)

const RECENT_LIMIT = 10

// AnnotatedParentLead adds the cross-row duplicate marker the listing views
// show: true when the same email appears more than once in the result set.
type AnnotatedParentLead struct {
	*ParentLead
	HasDuplicates bool `json:"hasDuplicates"`
}

type AnnotatedCaregiverApplication struct {
	*CaregiverApplication
	HasDuplicates bool `json:"hasDuplicates"`
}

type Dashboard struct {
	Stats            *Stats                           `json:"stats"`
	RecentParents    []*AnnotatedParentLead           `json:"recentParents"`
	RecentCaregivers []*AnnotatedCaregiverApplication `json:"recentCaregivers"`
}

type NewsletterReport struct {
	Total       int64                   `json:"total"`
	ThisWeek    int64                   `json:"thisWeek"`
	Subscribers []*NewsletterSubscriber `json:"subscribers"`
}

type AdminController struct {
	leads      repositories.ParentLeadRepository
	caregivers repositories.CaregiverApplicationRepository
	newsletter repositories.NewsletterRepository
	stats      repositories.StatsRepository
	export     *services.ExportService
	Config     config.Config
	log        logger.Logger
}

func New(
	leads repositories.ParentLeadRepository,
	caregivers repositories.CaregiverApplicationRepository,
	newsletter repositories.NewsletterRepository,
	stats repositories.StatsRepository,
	export *services.ExportService,
	config config.Config,
) *AdminController {
	return &AdminController{
		leads:      leads,
		caregivers: caregivers,
		newsletter: newsletter,
		stats:      stats,
		export:     export,
		Config:     config,
		log:        logger.New("AdminController"),
	}
}

func (c *AdminController) GetDashboard(ctx context.Context) (*Dashboard, error) {
	log := c.log.Function("GetDashboard")

	stats, err := c.stats.GetStats(ctx)
	if err != nil {
		return nil, log.Err("failed to get stats", err)
	}

	parents, err := c.leads.List(ctx, ParentLeadFilter{Limit: RECENT_LIMIT})
	if err != nil {
		return nil, log.Err("failed to list recent parent leads", err)
	}

	caregivers, err := c.caregivers.List(ctx, CaregiverApplicationFilter{Limit: RECENT_LIMIT})
	if err != nil {
		return nil, log.Err("failed to list recent caregiver applications", err)
	}

	return &Dashboard{
		Stats:            stats,
		RecentParents:    annotateParents(parents),
		RecentCaregivers: annotateCaregivers(caregivers),
	}, nil
}

func (c *AdminController) ListParentLeads(
	ctx context.Context,
	filter ParentLeadFilter,
) ([]*AnnotatedParentLead, *Stats, error) {
	log := c.log.Function("ListParentLeads")

	parents, err := c.leads.List(ctx, filter)
	if err != nil {
		return nil, nil, log.Err("failed to list parent leads", err)
	}

	stats, err := c.stats.GetStats(ctx)
	if err != nil {
		return nil, nil, log.Err("failed to get stats", err)
	}

	return annotateParents(parents), stats, nil
}

func (c *AdminController) ListCaregiverApplications(
	ctx context.Context,
	filter CaregiverApplicationFilter,
) ([]*AnnotatedCaregiverApplication, *Stats, error) {
	log := c.log.Function("ListCaregiverApplications")

	applications, err := c.caregivers.List(ctx, filter)
	if err != nil {
		return nil, nil, log.Err("failed to list caregiver applications", err)
	}

	stats, err := c.stats.GetStats(ctx)
	if err != nil {
		return nil, nil, log.Err("failed to get stats", err)
	}

	return annotateCaregivers(applications), stats, nil
}

func (c *AdminController) GetNewsletterReport(ctx context.Context) (*NewsletterReport, error) {
	log := c.log.Function("GetNewsletterReport")

	subscribers, err := c.newsletter.All(ctx)
	if err != nil {
		return nil, log.Err("failed to list newsletter subscribers", err)
	}

	stats, err := c.stats.GetStats(ctx)
	if err != nil {
		return nil, log.Err("failed to get stats", err)
	}

	return &NewsletterReport{
		Total:       stats.TotalSubscribers,
		ThisWeek:    stats.SubscribersThisWeek,
		Subscribers: subscribers,
	}, nil
}

func (c *AdminController) ExportParentLeads(
	ctx context.Context,
	filter ParentLeadFilter,
) (string, []byte, error) {
	log := c.log.Function("ExportParentLeads")

	parents, err := c.leads.List(ctx, filter)
	if err != nil {
		return "", nil, log.Err("failed to list parent leads for export", err)
	}

	data, err := c.export.ParentLeadsCSV(parents)
	if err != nil {
		return "", nil, log.Err("failed to render parent leads CSV", err)
	}

	return services.ExportFilename("parents"), data, nil
}

func (c *AdminController) ExportCaregiverApplications(
	ctx context.Context,
	filter CaregiverApplicationFilter,
) (string, []byte, error) {
	log := c.log.Function("ExportCaregiverApplications")

	applications, err := c.caregivers.List(ctx, filter)
	if err != nil {
		return "", nil, log.Err("failed to list caregiver applications for export", err)
	}

	data, err := c.export.CaregiverApplicationsCSV(applications)
	if err != nil {
		return "", nil, log.Err("failed to render caregiver applications CSV", err)
	}

	return services.ExportFilename("caregivers"), data, nil
}

func (c *AdminController) ExportNewsletter(ctx context.Context) (string, []byte, error) {
	log := c.log.Function("ExportNewsletter")

	subscribers, err := c.newsletter.All(ctx)
	if err != nil {
		return "", nil, log.Err("failed to list newsletter subscribers for export", err)
	}

	data, err := c.export.NewsletterCSV(subscribers)
	if err != nil {
		return "", nil, log.Err("failed to render newsletter CSV", err)
	}

	return "newsletter.csv", data, nil
}

func annotateParents(parents []*ParentLead) []*AnnotatedParentLead {
	emailCounts := make(map[string]int, len(parents))
	for _, lead := range parents {
		emailCounts[lead.Email]++
	}

	annotated := make([]*AnnotatedParentLead, 0, len(parents))
	for _, lead := range parents {
		annotated = append(annotated, &AnnotatedParentLead{
			ParentLead:    lead,
			HasDuplicates: emailCounts[lead.Email] > 1,
		})
	}
	return annotated
}

func annotateCaregivers(applications []*CaregiverApplication) []*AnnotatedCaregiverApplication {
	emailCounts := make(map[string]int, len(applications))
	for _, application := range applications {
		emailCounts[application.Email]++
	}

	annotated := make([]*AnnotatedCaregiverApplication, 0, len(applications))
	for _, application := range applications {
		annotated = append(annotated, &AnnotatedCaregiverApplication{
			CaregiverApplication: application,
			HasDuplicates:        emailCounts[application.Email] > 1,
		})
	}
	return annotated
}
