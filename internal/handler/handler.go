package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/aijay3/HubSpot-Integration-System/docs"
	"github.com/aijay3/HubSpot-Integration-System/internal/attribution"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/dto"
	"github.com/aijay3/HubSpot-Integration-System/internal/gateway"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
)

const correlationHeader = "X-Correlation-ID"

// Deps bundles the handler's collaborators and the pieces the health
// report inspects.
type Deps struct {
	Gateway         Gatewayer
	Ledger          ledger.Store
	DefaultModel    domain.AttributionModel
	PlatformsOnline map[string]bool
	Orchestrator    bool
	Intel           bool
}

type Handler struct {
	deps   Deps
	router *gin.Engine
	log    *zap.Logger
}

func NewHandler(deps Deps, log *zap.Logger) *Handler {
	h := &Handler{
		deps:   deps,
		router: gin.Default(),
		log:    log,
	}

	h.router.Use(correlationMiddleware())
	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/attribution", h.calculateAttribution)
	h.router.GET("/attribution/contact/:contact_id", h.contactReport)
	h.router.POST("/ad-sync", h.syncConversion)
	h.router.POST("/audit", h.runAudit)
	h.router.POST("/agent/query", h.agentQuery)
	h.router.POST("/workflows/trigger", h.triggerWorkflow)
	h.router.GET("/workflows", h.listWorkflows)
	h.router.POST("/webhooks/generic", h.genericWebhook)
	h.router.POST("/webhooks/approval", h.approvalWebhook)
	h.router.POST("/touchpoints", h.captureTouchpoint)
	h.router.POST("/transitions", h.recordTransition)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// correlationMiddleware honors a caller-supplied correlation id or
// mints one, and echoes it on the response.
func correlationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := gateway.CorrelationID(c.GetHeader(correlationHeader))
		c.Set("correlation_id", id)
		c.Header(correlationHeader, id)
		c.Next()
	}
}

func correlationID(c *gin.Context) string {
	return c.GetString("correlation_id")
}

// healthCheck handles GET /health
// @Summary Per-component health report
// @Description Report the health of the ledger, orchestrator link and ad platform connections
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := []dto.ComponentHealth{}
	overall := "healthy"

	ledgerStatus := "healthy"
	if err := h.deps.Ledger.Ping(ctx); err != nil {
		ledgerStatus = "unhealthy"
		overall = "unhealthy"
		components = append(components, dto.ComponentHealth{Name: "ledger", Status: ledgerStatus, Detail: err.Error()})
	} else {
		components = append(components, dto.ComponentHealth{Name: "ledger", Status: ledgerStatus})
	}

	orchestratorStatus := "healthy"
	if !h.deps.Orchestrator {
		orchestratorStatus = "degraded"
		if overall == "healthy" {
			overall = "degraded"
		}
	}
	components = append(components, dto.ComponentHealth{Name: "orchestrator", Status: orchestratorStatus})

	intelStatus := "healthy"
	if !h.deps.Intel {
		intelStatus = "degraded"
		if overall == "healthy" {
			overall = "degraded"
		}
	}
	components = append(components, dto.ComponentHealth{Name: "intel", Status: intelStatus})

	for name, online := range h.deps.PlatformsOnline {
		status := "healthy"
		if !online {
			status = "degraded"
			if overall == "healthy" {
				overall = "degraded"
			}
		}
		components = append(components, dto.ComponentHealth{Name: name, Status: status})
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:     overall,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	})
}

// calculateAttribution handles POST /attribution
// @Summary Calculate revenue attribution
// @Description Split a conversion value across a contact's touchpoint history under the requested model
// @Tags attribution
// @Accept json
// @Produce json
// @Param request body dto.CalculateAttributionRequest true "Attribution request"
// @Success 200 {object} dto.CalculateAttributionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attribution [post]
func (h *Handler) calculateAttribution(c *gin.Context) {
	var req dto.CalculateAttributionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid attribution request", zap.Error(err))
		h.validationError(c, err)
		return
	}

	model := domain.AttributionModel(req.ModelType)
	if req.ModelType == "" {
		model = h.deps.DefaultModel
	}

	outcome, err := h.deps.Gateway.CalculateAttribution(
		c.Request.Context(),
		correlationID(c),
		req.ContactID,
		domain.CentsFromFloat(req.TotalValue),
		model,
	)
	if err != nil {
		var unknownModel *attribution.UnknownModelError
		switch {
		case errors.As(err, &unknownModel):
			h.log.Warn("Unknown attribution model",
				zap.String("model_type", req.ModelType),
				zap.String("correlation_id", correlationID(c)))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:         "unknown_model",
				Message:       err.Error(),
				CorrelationID: correlationID(c),
			})
		case errors.Is(err, attribution.ErrEmptyLedger):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
				Error:         "empty_ledger",
				Message:       err.Error(),
				CorrelationID: correlationID(c),
			})
		default:
			h.log.Error("Attribution calculation failed",
				zap.String("contact_id", req.ContactID),
				zap.String("correlation_id", correlationID(c)),
				zap.Error(err))
			h.internalError(c, err)
		}
		return
	}

	result := outcome.Result
	allocations := make([]dto.Allocation, 0, len(result.Allocations))
	for _, a := range result.Allocations {
		allocations = append(allocations, dto.Allocation{
			TouchpointID: a.TouchpointID,
			Amount:       a.AmountCents.Float(),
		})
	}

	h.log.Info("Attribution calculated",
		zap.String("contact_id", req.ContactID),
		zap.String("model_type", string(model)),
		zap.Int("touchpoint_count", len(allocations)),
		zap.String("correlation_id", correlationID(c)))

	c.JSON(http.StatusOK, dto.CalculateAttributionResponse{
		ContactID:       result.ContactID,
		TotalValue:      result.TotalCents.Float(),
		ModelType:       string(result.Model),
		TouchpointCount: len(allocations),
		Allocations:     allocations,
		Status:          "completed",
		CorrelationID:   outcome.CorrelationID,
	})
}

// contactReport handles GET /attribution/contact/:contact_id
// @Summary Contact attribution report
// @Description Summarize a contact's touchpoint history, lifecycle stage and attributed revenue
// @Tags attribution
// @Produce json
// @Param contact_id path string true "Contact id"
// @Success 200 {object} dto.ContactReportResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attribution/contact/{contact_id} [get]
func (h *Handler) contactReport(c *gin.Context) {
	contactID := c.Param("contact_id")

	report, err := h.deps.Gateway.Report(c.Request.Context(), contactID)
	if err != nil {
		h.log.Error("Contact report failed",
			zap.String("contact_id", contactID),
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ContactReportResponse{
		ContactID:        report.ContactID,
		TouchpointCount:  report.TouchpointCount,
		FirstTouchSource: report.FirstTouchSource,
		LastTouchSource:  report.LastTouchSource,
		LifecycleStage:   string(report.LifecycleStage),
		AttributedValue:  report.AttributedCents.Float(),
	})
}

// syncConversion handles POST /ad-sync
// @Summary Sync a conversion to ad platforms
// @Description Push a lifecycle transition to the enabled ad platforms, gated by the high-value approval flow
// @Tags sync
// @Accept json
// @Produce json
// @Param request body dto.SyncConversionRequest true "Conversion sync request"
// @Success 200 {object} dto.SyncConversionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ad-sync [post]
func (h *Handler) syncConversion(c *gin.Context) {
	var req dto.SyncConversionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid sync request", zap.Error(err))
		h.validationError(c, err)
		return
	}

	transition, err := transitionFromRequest(req.ContactID, req.FromStage, req.ToStage, req.ConversionValue, req.Timestamp)
	if err != nil {
		h.validationError(c, err)
		return
	}

	outcome, err := h.deps.Gateway.SyncConversion(c.Request.Context(), correlationID(c), transition)
	if err != nil {
		h.log.Error("Conversion sync failed",
			zap.String("contact_id", req.ContactID),
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		h.internalError(c, err)
		return
	}

	platforms := make([]dto.PlatformSyncStatus, 0, len(outcome.Results))
	for _, r := range outcome.Results {
		platforms = append(platforms, dto.PlatformSyncStatus{
			Platform: string(r.Platform),
			Status:   string(r.Status),
			Attempts: r.Attempts,
			Skipped:  r.Skipped,
			Error:    r.Error,
		})
	}

	h.log.Info("Conversion sync handled",
		zap.String("contact_id", req.ContactID),
		zap.String("status", string(outcome.Execution.Status)),
		zap.Bool("sync_performed", outcome.SyncPerformed),
		zap.String("correlation_id", correlationID(c)))

	c.JSON(http.StatusOK, dto.SyncConversionResponse{
		ContactID:       req.ContactID,
		ExecutionID:     outcome.Execution.ExecutionID,
		SyncedPlatforms: platforms,
		Status:          string(outcome.Execution.Status),
		SyncPerformed:   outcome.SyncPerformed,
		CorrelationID:   outcome.CorrelationID,
	})
}

// runAudit handles POST /audit
// @Summary Run a data quality audit
// @Description Scan the touchpoint ledger for structural defects and produce a quality score
// @Tags audit
// @Produce json
// @Success 200 {object} dto.RunAuditResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /audit [post]
func (h *Handler) runAudit(c *gin.Context) {
	outcome, err := h.deps.Gateway.RunAudit(c.Request.Context(), correlationID(c))
	if err != nil {
		h.log.Error("Audit run failed",
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		h.internalError(c, err)
		return
	}

	report := outcome.Report
	passed, failed := 0, 0
	issues := []dto.AuditIssue{}
	for _, check := range report.Checks {
		if check.Passed {
			passed++
			continue
		}
		failed++
		issues = append(issues, dto.AuditIssue{
			IssueType: check.Name,
			Count:     len(check.Failures),
		})
	}

	c.JSON(http.StatusOK, dto.RunAuditResponse{
		Timestamp:     report.GeneratedAt.Format(time.RFC3339),
		QualityScore:  report.Score,
		Band:          string(report.Band),
		ChecksPassed:  passed,
		ChecksFailed:  failed,
		Issues:        issues,
		CorrelationID: outcome.CorrelationID,
	})
}

// agentQuery handles POST /agent/query
// @Summary Free-form intelligence query
// @Description Pass a question and opaque context to the reasoning collaborator
// @Tags agent
// @Accept json
// @Produce json
// @Param request body dto.QueryRequest true "Query"
// @Success 200 {object} dto.QueryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /agent/query [post]
func (h *Handler) agentQuery(c *gin.Context) {
	var req dto.QueryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid query request", zap.Error(err))
		h.validationError(c, err)
		return
	}

	outcome, err := h.deps.Gateway.Query(c.Request.Context(), correlationID(c), req.Query, req.Context)
	if err != nil {
		h.log.Error("Query failed",
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:         "collaborator_error",
			Message:       err.Error(),
			CorrelationID: correlationID(c),
		})
		return
	}

	c.JSON(http.StatusOK, dto.QueryResponse{
		Response:      outcome.Response,
		CorrelationID: outcome.CorrelationID,
		Timestamp:     outcome.Timestamp.Format(time.RFC3339),
	})
}

// triggerWorkflow handles POST /workflows/trigger
// @Summary Trigger an external workflow
// @Description Fire a named orchestrator workflow, optionally waiting for its completion signal
// @Tags workflows
// @Accept json
// @Produce json
// @Param request body dto.TriggerWorkflowRequest true "Trigger request"
// @Success 200 {object} dto.TriggerWorkflowResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /workflows/trigger [post]
func (h *Handler) triggerWorkflow(c *gin.Context) {
	var req dto.TriggerWorkflowRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid trigger request", zap.Error(err))
		h.validationError(c, err)
		return
	}

	outcome, err := h.deps.Gateway.TriggerWorkflow(
		c.Request.Context(),
		correlationID(c),
		req.WorkflowName,
		req.Payload,
		req.WaitForCompletion,
	)
	if err != nil {
		h.log.Error("Workflow trigger failed",
			zap.String("workflow_name", req.WorkflowName),
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:         "orchestrator_error",
			Message:       err.Error(),
			CorrelationID: correlationID(c),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TriggerWorkflowResponse{
		Status:        string(outcome.Status),
		ExecutionID:   outcome.ExecutionID,
		WorkflowName:  outcome.WorkflowName,
		Data:          outcome.Data,
		CorrelationID: outcome.CorrelationID,
	})
}

// listWorkflows handles GET /workflows
// @Summary List external workflows
// @Description List the workflows registered with the orchestrator
// @Tags workflows
// @Produce json
// @Success 200 {object} dto.ListWorkflowsResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /workflows [get]
func (h *Handler) listWorkflows(c *gin.Context) {
	workflows, err := h.deps.Gateway.ListWorkflows(c.Request.Context())
	if err != nil {
		h.log.Error("Workflow list failed",
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:         "orchestrator_error",
			Message:       err.Error(),
			CorrelationID: correlationID(c),
		})
		return
	}

	summaries := make([]dto.WorkflowSummary, 0, len(workflows))
	for _, wf := range workflows {
		summaries = append(summaries, dto.WorkflowSummary{ID: wf.ID, Name: wf.Name, Active: wf.Active})
	}

	c.JSON(http.StatusOK, dto.ListWorkflowsResponse{
		Workflows: summaries,
		Count:     len(summaries),
	})
}

// genericWebhook handles POST /webhooks/generic
// @Summary Inbound orchestrator event webhook
// @Description Acknowledge an orchestrator event and resolve any waiting synchronous trigger
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body dto.GenericWebhookRequest true "Webhook payload"
// @Success 200 {object} dto.AckResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /webhooks/generic [post]
func (h *Handler) genericWebhook(c *gin.Context) {
	var req dto.GenericWebhookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid generic webhook", zap.Error(err))
		h.validationError(c, err)
		return
	}

	h.deps.Gateway.HandleGenericWebhook(req.ExecutionID, req.EventType, req.Data)

	c.JSON(http.StatusOK, dto.AckResponse{Ack: true, CorrelationID: correlationID(c)})
}

// approvalWebhook handles POST /webhooks/approval
// @Summary Inbound approval decision webhook
// @Description Resolve a pending high-value approval with the caller's decision
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body dto.ApprovalWebhookRequest true "Approval decision"
// @Success 200 {object} dto.AckResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /webhooks/approval [post]
func (h *Handler) approvalWebhook(c *gin.Context) {
	var req dto.ApprovalWebhookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid approval webhook", zap.Error(err))
		h.validationError(c, err)
		return
	}

	if err := h.deps.Gateway.HandleApproval(req.ExecutionID, *req.Approved, req.Data); err != nil {
		if errors.Is(err, gateway.ErrUnknownExecution) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:         "unknown_execution",
				Message:       err.Error(),
				CorrelationID: correlationID(c),
			})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AckResponse{Ack: true, CorrelationID: correlationID(c)})
}

// captureTouchpoint handles POST /touchpoints
// @Summary Capture a touchpoint
// @Description Append a marketing interaction to a contact's ledger
// @Tags touchpoints
// @Accept json
// @Produce json
// @Param request body dto.CaptureTouchpointRequest true "Touchpoint"
// @Success 201 {object} dto.CaptureTouchpointResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /touchpoints [post]
func (h *Handler) captureTouchpoint(c *gin.Context) {
	var req dto.CaptureTouchpointRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid touchpoint request", zap.Error(err))
		h.validationError(c, err)
		return
	}

	tpType := domain.TouchpointType(req.TouchpointType)
	if !tpType.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:         "validation_error",
			Message:       "unknown touchpoint_type: " + req.TouchpointType,
			CorrelationID: correlationID(c),
		})
		return
	}

	ts := time.Now().UTC()
	if req.Timestamp > 0 {
		ts = time.Unix(req.Timestamp, 0).UTC()
	}

	stored, err := h.deps.Gateway.CaptureTouchpoint(c.Request.Context(), domain.Touchpoint{
		ContactID: req.ContactID,
		Timestamp: ts,
		Type:      tpType,
		Campaign: domain.Campaign{
			Source:   req.UTMSource,
			Medium:   req.UTMMedium,
			Campaign: req.UTMCampaign,
			Term:     req.UTMTerm,
			Content:  req.UTMContent,
		},
		ClickIDs: domain.ClickIDs{
			GCLID:   req.GCLID,
			FBCLID:  req.FBCLID,
			MSCLKID: req.MSCLKID,
			LIFatID: req.LIFatID,
		},
	})
	if err != nil {
		h.log.Error("Touchpoint capture failed",
			zap.String("contact_id", req.ContactID),
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		h.internalError(c, err)
		return
	}

	h.log.Info("Touchpoint captured",
		zap.String("touchpoint_id", stored.ID),
		zap.String("contact_id", stored.ContactID),
		zap.String("correlation_id", correlationID(c)))

	c.JSON(http.StatusCreated, dto.CaptureTouchpointResponse{
		TouchpointID: stored.ID,
		ContactID:    stored.ContactID,
		Status:       "captured",
	})
}

// recordTransition handles POST /transitions
// @Summary Record a lifecycle transition
// @Description Record a stage change and publish it for asynchronous conversion sync
// @Tags transitions
// @Accept json
// @Produce json
// @Param request body dto.RecordTransitionRequest true "Transition"
// @Success 202 {object} dto.RecordTransitionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transitions [post]
func (h *Handler) recordTransition(c *gin.Context) {
	var req dto.RecordTransitionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid transition request", zap.Error(err))
		h.validationError(c, err)
		return
	}

	transition, err := transitionFromRequest(req.ContactID, req.FromStage, req.ToStage, req.ConversionValue, req.Timestamp)
	if err != nil {
		h.validationError(c, err)
		return
	}

	if err := h.deps.Gateway.RecordTransition(c.Request.Context(), transition); err != nil {
		h.log.Error("Transition record failed",
			zap.String("contact_id", req.ContactID),
			zap.String("correlation_id", correlationID(c)),
			zap.Error(err))
		h.internalError(c, err)
		return
	}

	h.log.Info("Transition recorded",
		zap.String("contact_id", req.ContactID),
		zap.String("to_stage", req.ToStage),
		zap.String("correlation_id", correlationID(c)))

	c.JSON(http.StatusAccepted, dto.RecordTransitionResponse{
		ContactID: req.ContactID,
		ToStage:   req.ToStage,
		Status:    "recorded",
	})
}

func (h *Handler) validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:         "validation_error",
		Message:       err.Error(),
		CorrelationID: correlationID(c),
	})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:         "internal_error",
		Message:       err.Error(),
		CorrelationID: correlationID(c),
	})
}

func transitionFromRequest(contactID, from, to string, value float64, ts int64) (domain.LifecycleTransition, error) {
	fromStage := domain.LifecycleStage(from)
	toStage := domain.LifecycleStage(to)
	if !fromStage.Valid() || !toStage.Valid() {
		return domain.LifecycleTransition{}, errors.New("unknown lifecycle stage")
	}
	timestamp := time.Now().UTC()
	if ts > 0 {
		timestamp = time.Unix(ts, 0).UTC()
	}
	return domain.LifecycleTransition{
		ContactID:  contactID,
		FromStage:  fromStage,
		ToStage:    toStage,
		ValueCents: domain.CentsFromFloat(value),
		Timestamp:  timestamp,
	}, nil
}
