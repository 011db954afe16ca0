package http

import (
	"context"
	"net/http"

	"campus-hub/pkg/logger"
	"campus-hub/pkg/queue"
	"campus-hub/services/notifier/internal/entity"
	"campus-hub/services/notifier/internal/usecase"

	"github.com/gin-gonic/gin"
)

// EventPublisher is the slice of the queue client the handler needs.
type EventPublisher interface {
	PublishDocumentCreated(ctx context.Context, ev queue.DocumentCreated) (string, error)
	GetQueueLength() (int, error)
}

type TriggerHandler struct {
	dispatchUseCase usecase.DispatchUseCase
	publisher       EventPublisher
	logger          *logger.Logger
}

// NewTriggerHandler builds the handler. publisher may be nil, in which case
// the queue endpoints answer 503.
func NewTriggerHandler(dispatchUseCase usecase.DispatchUseCase, publisher EventPublisher, logger *logger.Logger) *TriggerHandler {
	return &TriggerHandler{
		dispatchUseCase: dispatchUseCase,
		publisher:       publisher,
		logger:          logger,
	}
}

type TriggerRequest struct {
	ID     string                 `json:"id" binding:"required"`
	Fields map[string]interface{} `json:"fields"`
}

func (h *TriggerHandler) bind(c *gin.Context) (entity.TriggerEvent, bool) {
	collection := c.Param("collection")
	if _, ok := entity.LookupCategory(collection); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown collection: " + collection})
		return entity.TriggerEvent{}, false
	}

	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return entity.TriggerEvent{}, false
	}
	if req.Fields == nil {
		req.Fields = map[string]interface{}{}
	}

	return entity.TriggerEvent{
		Collection: collection,
		DocumentID: req.ID,
		Fields:     req.Fields,
	}, true
}

// Dispatch godoc
// @Summary      Dispatch a created document
// @Description  Runs the push trigger for a document inline. Delivery failures are reported in the body, not the status code
// @Tags         triggers
// @Accept       json
// @Produce      json
// @Param        collection path string true "Watched collection (notifications, lost_items, found_items, notices, events)"
// @Param        request body TriggerRequest true "Created document"
// @Success      200  {object}  entity.DispatchResult
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /triggers/{collection} [post]
func (h *TriggerHandler) Dispatch(c *gin.Context) {
	ev, ok := h.bind(c)
	if !ok {
		return
	}

	result := h.dispatchUseCase.HandleDocumentCreated(c.Request.Context(), ev)
	c.JSON(http.StatusOK, result)
}

// Enqueue godoc
// @Summary      Queue a created document
// @Description  Publishes a document-created event to the document events queue
// @Tags         triggers
// @Accept       json
// @Produce      json
// @Param        collection path string true "Watched collection"
// @Param        request body TriggerRequest true "Created document"
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /triggers/{collection}/enqueue [post]
func (h *TriggerHandler) Enqueue(c *gin.Context) {
	if h.publisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Queue is not configured"})
		return
	}

	ev, ok := h.bind(c)
	if !ok {
		return
	}

	eventID, err := h.publisher.PublishDocumentCreated(c.Request.Context(), queue.DocumentCreated{
		Collection: ev.Collection,
		DocumentID: ev.DocumentID,
		Fields:     ev.Fields,
	})
	if err != nil {
		h.logger.Error("Failed to enqueue %s/%s: %v", ev.Collection, ev.DocumentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue document event"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":  "Document event queued",
		"event_id": eventID,
	})
}

// QueueStatus godoc
// @Summary      Document events queue depth
// @Tags         triggers
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /triggers/queue [get]
func (h *TriggerHandler) QueueStatus(c *gin.Context) {
	if h.publisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Queue is not configured"})
		return
	}

	length, err := h.publisher.GetQueueLength()
	if err != nil {
		h.logger.Error("Failed to get queue length: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get queue status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queue":  queue.DocumentEventsQueue,
		"length": length,
	})
}
