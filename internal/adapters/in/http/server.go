// Package http exposes the order lifecycle over a REST API built on echo.
package http

import (
	"errors"
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/signing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	approveHandler      commands.ApproveEstimateCommandHandler
	rotateTokenHandler  commands.RotateTrackingTokenCommandHandler

	timelineHandler     queries.GetOrderTimelineQueryHandler
	distributionHandler queries.GetStatusDistributionQueryHandler

	orderReader ports.OrderRepository
	signer      *signing.TrackingLinkSigner
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	approveHandler commands.ApproveEstimateCommandHandler,
	rotateTokenHandler commands.RotateTrackingTokenCommandHandler,
	timelineHandler queries.GetOrderTimelineQueryHandler,
	distributionHandler queries.GetStatusDistributionQueryHandler,
	orderReader ports.OrderRepository,
	signer *signing.TrackingLinkSigner,
) *Server {
	return &Server{
		changeStatusHandler: changeStatusHandler,
		approveHandler:      approveHandler,
		rotateTokenHandler:  rotateTokenHandler,
		timelineHandler:     timelineHandler,
		distributionHandler: distributionHandler,
		orderReader:         orderReader,
		signer:              signer,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/approve", s.ApproveEstimate)
	api.POST("/orders/:id/tracking-token/rotate", s.RotateTrackingToken)
	api.GET("/orders/:id/timeline", s.GetOrderTimeline)
	api.GET("/statuses", s.GetStatusCatalog)
	api.GET("/statuses/distribution", s.GetStatusDistribution)

	e.GET("/track", s.TrackOrder)
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// ErrorResponse is the JSON error body shared by all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// EventResponse is the JSON view of one audit event.
type EventResponse struct {
	ID         string         `json:"id"`
	EventType  string         `json:"event_type"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	OldStatus  *string        `json:"old_status,omitempty"`
	NewStatus  *string        `json:"new_status,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Visibility string         `json:"visibility"`
	CreatedBy  string         `json:"created_by"`
	CreatedAt  string         `json:"created_at"`
}

// ChangeStatusRequest is the body of POST /orders/:id/status.
type ChangeStatusRequest struct {
	Target     string `json:"target"`
	Actor      string `json:"actor"`
	Note       string `json:"note"`
	Visibility string `json:"visibility"`
}

// ChangeStatusResponse reports the outcome of a status change. NoOp is true
// when the target equaled the current status and nothing was written.
type ChangeStatusResponse struct {
	NoOp  bool           `json:"no_op"`
	Event *EventResponse `json:"event,omitempty"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	visibility := order.Visibility(req.Visibility)
	if req.Visibility == "" {
		visibility = order.VisibilityCustomer
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, order.Status(req.Target), req.Actor, req.Note, visibility)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	event, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return statusChangeError(ctx, err)
	}

	if event == nil {
		return ctx.JSON(http.StatusOK, ChangeStatusResponse{NoOp: true})
	}

	return ctx.JSON(http.StatusOK, ChangeStatusResponse{Event: eventResponse(event)})
}

// ApproveRequest is the body of POST /orders/:id/approve.
type ApproveRequest struct {
	Actor string `json:"actor"`
}

// ApproveEstimate handles POST /api/v1/orders/:id/approve.
func (s *Server) ApproveEstimate(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ApproveRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApproveEstimateCommand(orderID, req.Actor)
	if err != nil {
		return badRequest(ctx, "Invalid approval: "+err.Error())
	}

	event, err := s.approveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotApprovable) {
			return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Code:    http.StatusUnprocessableEntity,
				Message: "Order is not awaiting approval",
			})
		}
		return statusChangeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ChangeStatusResponse{Event: eventResponse(event)})
}

// RotateTrackingToken handles POST /api/v1/orders/:id/tracking-token/rotate.
func (s *Server) RotateTrackingToken(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ApproveRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRotateTrackingTokenCommand(orderID, req.Actor)
	if err != nil {
		return badRequest(ctx, "Invalid rotation: "+err.Error())
	}

	if err = s.rotateTokenHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return statusChangeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderTimeline handles GET /api/v1/orders/:id/timeline?audience=.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	audience := queries.Audience(ctx.QueryParam("audience"))
	if audience == "" {
		audience = queries.AudiencePublic
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID, audience)
	if err != nil {
		return badRequest(ctx, "Invalid timeline request: "+err.Error())
	}

	entries, err := s.timelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to load timeline")
	}

	return ctx.JSON(http.StatusOK, entries)
}

// StatusCatalogEntry is the JSON view of one catalog status.
type StatusCatalogEntry struct {
	Code        string   `json:"code"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Next        []string `json:"next"`
}

// GetStatusCatalog handles GET /api/v1/statuses.
func (s *Server) GetStatusCatalog(ctx echo.Context) error {
	statuses := order.KnownStatuses()
	response := make([]StatusCatalogEntry, 0, len(statuses))
	for _, code := range statuses {
		next := code.AllowedNext()
		nextCodes := make([]string, 0, len(next))
		for _, n := range next {
			nextCodes = append(nextCodes, string(n))
		}

		response = append(response, StatusCatalogEntry{
			Code:        string(code),
			Label:       code.Label(),
			Color:       code.Color(),
			Description: code.Description(),
			Next:        nextCodes,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStatusDistribution handles GET /api/v1/statuses/distribution.
func (s *Server) GetStatusDistribution(ctx echo.Context) error {
	counts, err := s.distributionHandler.Handle(
		ctx.Request().Context(), queries.NewGetStatusDistributionQuery())
	if err != nil {
		return internalError(ctx, "Failed to load status distribution")
	}

	return ctx.JSON(http.StatusOK, counts)
}

// TrackResponse is the public order view behind a signed tracking link.
type TrackResponse struct {
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	StatusColor string          `json:"status_color"`
	Timeline    []EventResponse `json:"timeline"`
}

// TrackOrder handles GET /track?link=. The link must verify against the
// signing secret and its embedded token must match the order's current
// tracking token; rotated-away links fail both ways.
func (s *Server) TrackOrder(ctx echo.Context) error {
	claims, err := s.signer.Verify(ctx.QueryParam("link"))
	if err != nil {
		return notFound(ctx, "Tracking link is invalid or expired")
	}

	orderID, err := kernel.UUIDFromString(claims.OrderID)
	if err != nil {
		return notFound(ctx, "Tracking link is invalid or expired")
	}

	aggregate, err := s.orderReader.Get(ctx.Request().Context(), orderID)
	if err != nil {
		return notFound(ctx, "Tracking link is invalid or expired")
	}

	current := aggregate.TrackingToken()
	if current == nil || *current != claims.TrackingToken {
		return notFound(ctx, "Tracking link is invalid or expired")
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID, queries.AudienceCustomer)
	if err != nil {
		return internalError(ctx, "Failed to load order")
	}

	entries, err := s.timelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to load order")
	}

	timeline := make([]EventResponse, 0, len(entries))
	for _, entry := range entries {
		timeline = append(timeline, EventResponse{
			ID:         entry.ID.String(),
			EventType:  entry.EventType,
			Title:      entry.Title,
			Message:    entry.Message,
			OldStatus:  entry.OldStatus,
			NewStatus:  entry.NewStatus,
			Data:       entry.Data,
			Visibility: string(entry.Visibility),
			CreatedBy:  entry.CreatedBy,
			CreatedAt:  entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	status := aggregate.Status()
	return ctx.JSON(http.StatusOK, TrackResponse{
		OrderNumber: aggregate.Number(),
		Status:      string(status),
		StatusLabel: status.Label(),
		StatusColor: status.Color(),
		Timeline:    timeline,
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func eventResponse(event *order.Event) *EventResponse {
	var oldStatus, newStatus *string
	if s := event.OldStatus(); s != nil {
		code := string(*s)
		oldStatus = &code
	}
	if s := event.NewStatus(); s != nil {
		code := string(*s)
		newStatus = &code
	}

	return &EventResponse{
		ID:         event.ID().String(),
		EventType:  event.Type(),
		Title:      event.Title(),
		Message:    event.Message(),
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Data:       event.Data(),
		Visibility: string(event.Visibility()),
		CreatedBy:  event.CreatedBy(),
		CreatedAt:  event.CreatedAt().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// statusChangeError maps command failures to HTTP responses.
func statusChangeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, order.ErrUnknownStatus), errors.Is(err, order.ErrTransitionNotAllowed):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrentModification):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Order was modified concurrently, retry the request",
		})
	default:
		return internalError(ctx, "Failed to process request")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
