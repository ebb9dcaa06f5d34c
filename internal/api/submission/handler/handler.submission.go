// Package handler exposes observation submissions over HTTP: read CRUD,
// synchronous rating and the async rating queue.
package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "vidya_assessment/internal/api/base/handler"
	questionsvc "vidya_assessment/internal/api/question/service"
	solutionsvc "vidya_assessment/internal/api/solution/service"
	"vidya_assessment/internal/api/submission/dto"
	submissionmodels "vidya_assessment/internal/api/submission/models"
	submissionsvc "vidya_assessment/internal/api/submission/service"
	"vidya_assessment/internal/common"
	"vidya_assessment/internal/delivery"
	"vidya_assessment/internal/delivery/channels"
	"vidya_assessment/internal/global"
	"vidya_assessment/internal/reporting"
	"vidya_assessment/internal/scoring"
	"vidya_assessment/internal/utility"
)

// SubmissionHandler serves submission CRUD plus the rating endpoints.
type SubmissionHandler struct {
	*basehdl.BaseHandler[submissionmodels.ObservationSubmission, dto.SubmissionCreateInput, dto.SubmissionUpdateInput]

	ratingService *submissionsvc.RatingService
	queueService  *submissionsvc.RatingQueueService
}

// NewSubmissionHandler wires the handler, the rating orchestrator and its
// dependencies from the server configuration.
func NewSubmissionHandler() (*SubmissionHandler, error) {
	submissionService, err := submissionsvc.NewObservationSubmissionService()
	if err != nil {
		return nil, fmt.Errorf("create submission service: %w", err)
	}

	queueService, err := submissionsvc.NewRatingQueueService()
	if err != nil {
		return nil, fmt.Errorf("create rating queue service: %w", err)
	}

	ratingService, err := NewRatingServiceFromConfig(submissionService)
	if err != nil {
		return nil, err
	}

	return &SubmissionHandler{
		BaseHandler:   basehdl.NewBaseHandler[submissionmodels.ObservationSubmission, dto.SubmissionCreateInput, dto.SubmissionUpdateInput](submissionService),
		ratingService: ratingService,
		queueService:  queueService,
	}, nil
}

// NewRatingServiceFromConfig builds the rating orchestrator against the
// registered collections and the configured engine, reporting and email
// endpoints. Shared with the queue worker.
func NewRatingServiceFromConfig(submissionService *submissionsvc.ObservationSubmissionService) (*submissionsvc.RatingService, error) {
	solutionService, err := solutionsvc.NewSolutionService()
	if err != nil {
		return nil, fmt.Errorf("create solution service: %w", err)
	}

	criterionService, err := questionsvc.NewCriterionService()
	if err != nil {
		return nil, fmt.Errorf("create criterion service: %w", err)
	}

	questionService, err := questionsvc.NewQuestionService()
	if err != nil {
		return nil, fmt.Errorf("create question service: %w", err)
	}

	cfg := global.ServerConfig

	engine := scoring.NewHTTPRatingEngine(cfg.ScoringEngineURL, time.Duration(cfg.ScoringEngineTimeout)*time.Second)
	publisher := reporting.NewWebhookPublisher(cfg.ReportingWebhookURL)
	alerter := delivery.NewWebhookAlerter(cfg.OpsAlertWebhookURL)
	email := channels.NewEmailClient(channels.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	return submissionsvc.NewRatingService(
		submissionService,
		solutionService,
		criterionService,
		questionService,
		engine,
		publisher,
		email,
		alerter,
		cfg.DefaultRatingRecipients(),
	), nil
}

// HandleRate rates one completed submission synchronously.
func (h *SubmissionHandler) HandleRate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		submissionID, err := h.submissionIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		message, err := h.ratingService.RateByID(c.Context(), submissionID)
		h.HandleResponse(c, map[string]interface{}{"message": message}, err)
		return nil
	})
}

// HandlePushCompleted re-pushes one completed submission for reporting.
func (h *SubmissionHandler) HandlePushCompleted(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		submissionID, err := h.submissionIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ratingService.PushCompletedByID(c.Context(), submissionID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, map[string]interface{}{"message": "Submission pushed for reporting"}, nil)
		return nil
	})
}

// HandlePushToQueue queues one submission for asynchronous rating.
func (h *SubmissionHandler) HandlePushToQueue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		submissionID, err := h.submissionIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		entry, err := h.queueService.Enqueue(c.Context(), submissionID)
		h.HandleResponse(c, entry, err)
		return nil
	})
}

func (h *SubmissionHandler) submissionIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	raw := c.Params("submissionId")
	if !primitive.IsValidObjectID(raw) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("submissionId '%s' is not a valid ObjectID", raw),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(raw), nil
}
