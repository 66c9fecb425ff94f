package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"om-svc-order/internal/core/domain"
	"om-svc-order/internal/core/port"
)

type EventTypeHandler struct {
	Handler
	service port.Service
}

func NewEventTypeHandler(service port.Service, logger *zap.Logger) (*EventTypeHandler, error) {
	return &EventTypeHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (eh *EventTypeHandler) ListEventTypes(ctx *gin.Context) {
	list, err := eh.service.ListEventTypes(ctx)
	if err != nil {
		eh.handleError(ctx, err)
		return
	}

	eh.handleSuccess(ctx, list)
}

func (eh *EventTypeHandler) CreateEventType(ctx *gin.Context) {
	var eventType domain.EventType
	if err := ctx.ShouldBindJSON(&eventType); err != nil || eventType.Name == "" {
		eh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	created, err := eh.service.CreateEventType(ctx, &eventType)
	if err != nil {
		eh.handleError(ctx, err)
		return
	}

	eh.handleSuccessWithStatus(ctx, created, http.StatusCreated)
}

func (eh *EventTypeHandler) DeleteEventType(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("eventTypeId"))
	if err != nil {
		eh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if err := eh.service.DeleteEventType(ctx, id); err != nil {
		eh.handleError(ctx, err)
		return
	}

	eh.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
