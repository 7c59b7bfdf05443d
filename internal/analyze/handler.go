package analyze

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"kix-ai-bridge/internal/common/logger"
	"kix-ai-bridge/internal/common/metrics"
)

var ticketIDPattern = regexp.MustCompile(`^\d+$`)

// Handler exposes the analyze pipeline over HTTP.
type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger: log.With(map[string]interface{}{
			"component": "analyze-handler",
		}),
	}
}

// Analyze handles POST /azureopenai/tickets/:ticketId/analyze. Once the
// ticket is confirmed found, 202 is written immediately and the rest of the
// pipeline runs after the response has been delivered; the caller never
// learns the final outcome through this exchange.
func (h *Handler) Analyze(c *gin.Context) {
	idParam := c.Param("ticketId")
	if !ticketIDPattern.MatchString(idParam) {
		h.respond(c, http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Ticket ID %q is not numeric.", idParam),
		})
		return
	}

	ticketID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.respond(c, http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Ticket ID %q is not a valid number.", idParam),
		})
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		h.respond(c, http.StatusBadRequest, gin.H{
			"message": "Failed to read request body.",
		})
		return
	}

	violations, err := ValidateBody(raw)
	if err != nil {
		h.respond(c, http.StatusBadRequest, gin.H{
			"message": "Request body is not valid JSON.",
		})
		return
	}
	if len(violations) > 0 {
		h.respond(c, http.StatusBadRequest, gin.H{
			"message": "Request validation failed.",
			"errors":  violations,
		})
		return
	}

	var req Request
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			h.respond(c, http.StatusBadRequest, gin.H{
				"message": "Request body is not valid JSON.",
			})
			return
		}
	}
	opts := h.service.Resolve(req)

	ctx := c.Request.Context()

	token, err := h.service.Authenticate(ctx)
	if err != nil {
		h.logger.WithError(err).Error("KIX authentication failed", map[string]interface{}{
			"ticketId": ticketID,
		})
		h.respond(c, http.StatusInternalServerError, gin.H{
			"message": "Auth. to KIX API failed.",
		})
		return
	}

	ticket, err := h.service.Fetch(ctx, token, ticketID)
	if err != nil {
		h.logger.WithError(err).Warn("ticket fetch failed", map[string]interface{}{
			"ticketId": ticketID,
		})
		h.respond(c, http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("Ticket with ID %d not found.", ticketID),
		})
		return
	}

	h.respond(c, http.StatusAccepted, gin.H{
		"message": "Ticket found, processing...",
	})

	go h.service.Finish(ticketID, token, ticket, opts)
}

// Health handles GET /health. Fixed body, no dependency checks.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) respond(c *gin.Context, status int, body gin.H) {
	metrics.AnalyzeRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.JSON(status, body)
}
