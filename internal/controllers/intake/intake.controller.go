package intakeController

import (
	"context"
	"errors"

	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/validation"
)

// SubmissionMeta is the request context recorded with each submission.
type SubmissionMeta struct {
	UserAgent string
	IPAddr    string
}

// IntakeController orchestrates a submission: validate, store, then hand
// off notification. Notification failure never fails the request; the row
// is already durable by then.
type IntakeController struct {
	leads      repositories.ParentLeadRepository
	caregivers repositories.CaregiverApplicationRepository
	newsletter repositories.NewsletterRepository
	notifier   *services.NotificationService
	Config     config.Config
	log        logger.Logger
}

func New(
	leads repositories.ParentLeadRepository,
	caregivers repositories.CaregiverApplicationRepository,
	newsletter repositories.NewsletterRepository,
	notifier *services.NotificationService,
	config config.Config,
) *IntakeController {
	return &IntakeController{
		leads:      leads,
		caregivers: caregivers,
		newsletter: newsletter,
		notifier:   notifier,
		Config:     config,
		log:        logger.New("IntakeController"),
	}
}

func (c *IntakeController) SubmitParentLead(
	ctx context.Context,
	form validation.ParentLeadForm,
	meta SubmissionMeta,
) (*ParentLead, error) {
	log := c.log.Function("SubmitParentLead")

	lead, validationErr := form.Validate()
	if validationErr != nil {
		log.Info("parent lead rejected", "message", validationErr.Message)
		return nil, validationErr
	}

	lead.UserAgent = meta.UserAgent
	lead.IPAddr = meta.IPAddr

	if err := c.leads.Insert(ctx, lead); err != nil {
		return nil, log.Err("failed to store parent lead", err)
	}

	c.notifier.DispatchParentLead(lead)

	return lead, nil
}

func (c *IntakeController) SubmitCaregiverApplication(
	ctx context.Context,
	form validation.CaregiverApplicationForm,
	meta SubmissionMeta,
) (*CaregiverApplication, error) {
	log := c.log.Function("SubmitCaregiverApplication")

	application, validationErr := form.Validate()
	if validationErr != nil {
		log.Info("caregiver application rejected", "message", validationErr.Message)
		return nil, validationErr
	}

	application.UserAgent = meta.UserAgent
	application.IPAddr = meta.IPAddr

	if err := c.caregivers.Insert(ctx, application); err != nil {
		return nil, log.Err("failed to store caregiver application", err)
	}

	c.notifier.DispatchCaregiverApplication(application)

	return application, nil
}

// Subscribe treats a repeat signup as success; the caller sees the same
// redirect either way.
func (c *IntakeController) Subscribe(ctx context.Context, form validation.NewsletterForm) error {
	log := c.log.Function("Subscribe")

	email, validationErr := form.Validate()
	if validationErr != nil {
		log.Info("newsletter signup rejected", "message", validationErr.Message)
		return validationErr
	}

	if _, err := c.newsletter.Subscribe(ctx, email); err != nil {
		if errors.Is(err, repositories.ErrAlreadySubscribed) {
			return nil
		}
		return log.Err("failed to store newsletter signup", err)
	}

	return nil
}
