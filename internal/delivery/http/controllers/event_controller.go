package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"swiftmeet/internal/delivery/http/helpers"
	"swiftmeet/internal/delivery/http/middleware"
	"swiftmeet/internal/domain"
)

// EventRequest is the request body for POST /events and PUT /events/{eventID}.
// id, volunteers and createdAt are server-managed and rejected as unknown fields.
type EventRequest = domain.EventDraft

// EventView is an event together with its derived capacity state.
// swagger:model EventView
type EventView struct {
	Event     domain.Event          `json:"event"`
	Status    domain.CapacityStatus `json:"status"`
	SpotsLeft int                   `json:"spots_left"`
}

// NewEventView derives the capacity fields of e.
func NewEventView(e domain.Event) EventView {
	return EventView{Event: e, Status: e.Status(), SpotsLeft: e.SpotsLeft()}
}

// ListEventsResponse is the data of GET /events.
type ListEventsResponse struct {
	Events     []domain.Event         `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EventSuccessResponse is the success response envelope for create and update (201/200).
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventViewSuccessResponse is the success response envelope for GET /events/{eventID} and signups (200).
type EventViewSuccessResponse struct {
	Data  EventView         `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CatalogOptions lists the values accepted by the listing filters.
type CatalogOptions struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

type EventController struct {
	Logger    *slog.Logger
	Lifecycle domain.EventLifecycleService
	Catalog   domain.EventCatalogService
}

func NewEventController(logger *slog.Logger, lifecycle domain.EventLifecycleService, catalog domain.EventCatalogService) *EventController {
	return &EventController{
		Logger:    logger,
		Lifecycle: lifecycle,
		Catalog:   catalog,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns the events matching the free-text query, category and location, in stored order, paginated. Category and location default to "all".
// @Tags events
// @Produce json
// @Param q query string false "Matches title or organization, case-insensitive"
// @Param category query string false "Exact category or \"all\""
// @Param location query string false "Location substring or \"all\""
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains events and pagination"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := QueryFromRequest(r)
	params := helpers.ParsePagination(r)
	events, err := c.Catalog.Search(r.Context(), query)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     helpers.Page(events, params),
		Pagination: helpers.NewPaginationMeta(params, len(events)),
	})
}

// QueryFromRequest reads q, category and location; blank filters become domain.AllValues.
func QueryFromRequest(r *http.Request) domain.EventQuery {
	v := r.URL.Query()
	return domain.EventQuery{
		Text:     strings.TrimSpace(v.Get("q")),
		Category: orAll(v.Get("category")),
		Location: orAll(v.Get("location")),
	}
}

func orAll(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return domain.AllValues
	}
	return s
}

// CatalogOptions godoc
// @Summary Listing filter options
// @Description Returns the fixed category list and the location presets.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains categories and locations"
// @Router /catalog/options [get]
func (c *EventController) CatalogOptions(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, CatalogOptions{
		Categories: domain.Categories,
		Locations:  domain.LocationPresets,
	})
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event with its capacity status and remaining spots.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventViewSuccessResponse "data contains event, status and spots_left"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Lifecycle.GetByID(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NewEventView(*event))
}

// CreateEvent godoc
// @Summary Publish a new event
// @Description Validates the draft, assigns a fresh id, zero volunteers and the creation time, and appends the event to the collection.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event draft"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed (error.fields lists every failed field)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Lifecycle.Create(r.Context(), req)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.logChange(r, "event created", event.ID)
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Edit an event
// @Description Replaces the descriptive fields of an event. The volunteer count, id and createdAt are kept; maxVolunteers may not drop below the current volunteer count.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "Event draft"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Lifecycle.Update(r.Context(), eventID, req)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.logChange(r, "event updated", eventID)
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes the event from the collection. Other events keep their order.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data.status is \"deleted\""
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Lifecycle.Delete(r.Context(), eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.logChange(r, "event deleted", eventID)
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// logChange records an organizer mutation with the authenticated username.
func (c *EventController) logChange(r *http.Request, msg, eventID string) {
	organizer, ok := middleware.OrganizerFromContext(r.Context())
	if !ok {
		organizer = "anonymous"
	}
	c.Logger.InfoContext(r.Context(), msg, "event_id", eventID, "organizer", organizer)
}
