package booking

import (
	"net/http"
	"roost/infras/otel"
	"roost/internal/domains/booking/model/dto"
	"roost/internal/domains/booking/service"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	"roost/shared/validator"
	"roost/transport/http/middleware"
	"roost/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/availability", handler.CheckAvailability)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/resource/{resourceID}", handler.GetResourceBookings)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

// CreateBooking admits a booking for a room stay or an experience slot.
// @Summary Create a new booking
// @Description Book a room for a date range or an experience for a published slot. The requested interval is admitted atomically; overlapping requests conflict.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 429 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	actorID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || actorID == "" {
		response.WithError(writer, failure.Unauthorized("unauthorized"))

		return
	}

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req, actorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking confirmed for user " + actorID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// CheckAvailability previews whether an interval could be booked right now.
// @Summary Check availability
// @Description Answer whether the requested interval is currently bookable. The answer is advisory; only CreateBooking admits atomically.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Availability Request"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability verdict"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/availability [post]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	availability, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, availability)
}

// GetMyBookings lists the authenticated guest's bookings, newest first.
// @Summary Get my bookings
// @Description Retrieve the authenticated guest's bookings of any status with pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of the guest's bookings"
// @Failure 401 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	actorID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || actorID == "" {
		response.WithError(writer, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.ForGuest(ctx, actorID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully for user " + actorID)

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetResourceBookings lists a resource's future confirmed bookings.
// @Summary Get future bookings for a resource
// @Description Retrieve a resource's upcoming confirmed bookings ordered by check-in.
// @Tags Booking
// @Accept json
// @Produce json
// @Param resourceID path string true "Resource ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of future confirmed bookings"
// @Failure 400 {object} response.Error
// @Router /v1/bookings/resource/{resourceID} [get]
func (handler *Handler) GetResourceBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetResourceBookings")
	defer scope.End()

	resourceID := chi.URLParam(request, constant.RequestParamResourceID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.FutureForResource(ctx, resourceID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get resource bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Resource bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// CancelBooking cancels a confirmed booking and releases its interval.
// @Summary Cancel a booking
// @Description Cancel a confirmed booking. Allowed for the booking guest or the resource owner while the cancellation window is open.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.CancelBookingResponse] "Booking cancelled"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	actorID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || actorID == "" {
		response.WithError(writer, failure.Unauthorized("unauthorized"))

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	cancelled, err := handler.service.Cancel(ctx, id, actorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking cancelled by user " + actorID)

	response.WithJSON(writer, http.StatusOK, cancelled)
}
