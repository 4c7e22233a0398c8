package resource

import (
	"net/http"
	"roost/infras/otel"
	"roost/internal/domains/resource/model"
	"roost/internal/domains/resource/model/dto"
	"roost/internal/domains/resource/service"
	"roost/shared"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/validator"
	"roost/transport/http/middleware"
	"roost/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Resource
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Resource, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/resources", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateResource)
		routerGroup.Get("/", handler.GetResources)
		routerGroup.Get("/{id}", handler.GetResourceByID)
		routerGroup.Patch("/{id}", handler.UpdateResource)
		routerGroup.Delete("/{id}", handler.DeleteResource)
		routerGroup.Post("/{id}/slots", handler.PublishSlot)
		routerGroup.Get("/{id}/slots", handler.GetSlots)
	})
}

// CreateResource handles the creation of a new bookable resource.
// @Summary Create a new resource
// @Description Create a room or experience owned by the authenticated user.
// @Tags Resource
// @Accept multipart/form-data
// @Produce json
// @Param kind formData string true "Resource kind (room or experience)"
// @Param name formData string true "Resource name"
// @Param location formData string false "Resource location"
// @Param capacity formData integer false "Seats per slot, experiences only"
// @Param active formData boolean false "Resource active status"
// @Param image formData file false "Resource image"
// @Success 201 {object} response.Message "Resource created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resources [post]
// @Security BearerAuth
func (handler *Handler) CreateResource(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateResource")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateResourceRequest{
		Kind:     request.FormValue("kind"),
		Name:     request.FormValue("name"),
		Location: request.FormValue("location"),
	}

	if capStr := request.FormValue("capacity"); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = c
		}
	}

	if activeStr := request.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create resource")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Resource created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Resource created successfully")
}

// GetResources retrieves all resources based on query parameters.
// @Summary Get all resources
// @Description Retrieve all resources with optional filtering and pagination.
// @Tags Resource
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param kind query string false "Filter by kind"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetResourcesResponse] "List of resources"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resources [get]
func (handler *Handler) GetResources(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetResources")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	location := r.URL.Query().Get(model.FieldLocation)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    name,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLocation,
				Operator: gDto.FilterOperatorLike,
				Value:    location,
				Table:    model.TableName,
			},
		},
	}

	if kind := r.URL.Query().Get(model.FieldKind); kind != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldKind,
			Operator: gDto.FilterOperatorEq,
			Value:    kind,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	resources, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get resources")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Resources retrieved successfully")

	response.WithJSON(w, http.StatusOK, resources)
}

// GetResourceByID retrieves a resource by its ID.
// @Summary Get a resource by ID
// @Description Retrieve a resource by its unique identifier.
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Data[dto.ResourceResponse] "Resource details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resources/{id} [get]
func (handler *Handler) GetResourceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetResourceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	resource, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get resource by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Resource retrieved successfully")

	response.WithJSON(w, http.StatusOK, resource)
}

// UpdateResource updates an existing resource by its ID.
// @Summary Update a resource by ID
// @Description Update the details of an existing resource. Only the owner may update it.
// @Tags Resource
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Resource ID"
// @Param name formData string false "Resource name"
// @Param location formData string false "Resource location"
// @Param capacity formData integer false "Seats per slot, experiences only"
// @Param active formData boolean false "Resource active status"
// @Param image formData file false "Resource image"
// @Success 200 {object} response.Message "Resource updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resources/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateResource")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateResourceRequest{
		Name:     r.FormValue("name"),
		Location: r.FormValue("location"),
	}

	if capStr := r.FormValue("capacity"); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = &c
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update resource")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Resource updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Resource updated successfully")
}

// DeleteResource deletes a resource by its ID.
// @Summary Delete a resource by ID
// @Description Delete a resource using its unique identifier. Only the owner may delete it.
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Message "Resource deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resources/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteResource")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete resource")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Resource deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Resource deleted successfully")
}

// PublishSlot publishes a bookable time slot for an experience.
// @Summary Publish an experience slot
// @Description Publish a start time and duration for an experience. Only the owner may publish slots.
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param request body dto.PublishSlotRequest true "Publish Slot Request"
// @Success 201 {object} response.Message "Slot published successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/resources/{id}/slots [post]
// @Security BearerAuth
func (handler *Handler) PublishSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PublishSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.PublishSlotRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.PublishSlot(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to publish slot")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Slot published successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Slot published successfully")
}

// GetSlots retrieves the published slots of an experience.
// @Summary Get experience slots
// @Description Retrieve the published slots of an experience ordered by start time.
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Data[dto.GetSlotsResponse] "List of published slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/resources/{id}/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	slots, err := handler.service.GetSlots(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}
