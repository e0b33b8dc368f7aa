package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intel/internal/dto"
	middleware "github.com/octobees/lead-intel/internal/middleware"
)

// JobsHandler posts pipeline batch jobs to the worker service.
type JobsHandler struct {
	worker WorkerPoster
}

// NewJobsHandler constructs a jobs handler backed by an HTTP client.
// If `client == nil`, it automatically creates an ID-token client for Cloud Run → Cloud Run calls.
func NewJobsHandler(client *http.Client, workerBaseURL string) *JobsHandler {
	return &JobsHandler{worker: NewWorkerClient(client, workerBaseURL)}
}

// NewJobsHandlerWithWorker allows injecting a custom worker client (useful for tests).
func NewJobsHandlerWithWorker(worker WorkerPoster) *JobsHandler {
	return &JobsHandler{worker: worker}
}

// Enqueue handles POST /pipeline/jobs requests and forwards them to the worker.
func (h *JobsHandler) Enqueue(c echo.Context) error {
	var req dto.PipelineJobRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	names := make([]string, 0, len(req.CompanyNames))
	for _, name := range req.CompanyNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return Error(c, http.StatusBadRequest, "company_names is required")
	}

	payload := map[string]any{
		"company_names": names,
	}
	if len(req.Sources) > 0 {
		payload["sources"] = req.Sources
	}

	ctx := c.Request().Context()
	data, err := h.worker.PostJSON(ctx, "/pipeline", payload, middleware.RequestIDFromContext(c))
	if err != nil {
		return Error(c, http.StatusBadGateway, err.Error())
	}
	if data == nil {
		data = map[string]any{"status": "queued"}
	}
	return Success(c, http.StatusOK, "pipeline job queued", data)
}
