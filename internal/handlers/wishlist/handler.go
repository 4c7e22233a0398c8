package wishlist

import (
	"net/http"
	"roost/infras/otel"
	"roost/internal/domains/wishlist/model/dto"
	"roost/internal/domains/wishlist/service"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/validator"
	"roost/transport/http/middleware"
	"roost/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Wishlist
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Wishlist, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/wishlists", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateWishlist)
		routerGroup.Get("/", handler.GetWishlists)
		routerGroup.Get("/{id}", handler.GetWishlistByID)
		routerGroup.Patch("/{id}", handler.UpdateWishlist)
		routerGroup.Delete("/{id}", handler.DeleteWishlist)
		routerGroup.Put("/{id}/resources/{resourceID}", handler.ToggleResource)
	})
}

// CreateWishlist handles the creation of a new wishlist.
// @Summary Create a new wishlist
// @Description Create a named wishlist for the authenticated user.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param request body dto.CreateWishlistRequest true "Create Wishlist Request"
// @Success 201 {object} response.Message "Wishlist created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wishlists [post]
// @Security BearerAuth
func (handler *Handler) CreateWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateWishlist")
	defer scope.End()

	req := dto.CreateWishlistRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create wishlist")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Wishlist created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Wishlist created successfully")
}

// GetWishlists lists the authenticated user's wishlists.
// @Summary Get my wishlists
// @Description Retrieve the authenticated user's wishlists with pagination.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetWishlistsResponse] "List of wishlists"
// @Failure 401 {object} response.Error
// @Router /v1/wishlists [get]
// @Security BearerAuth
func (handler *Handler) GetWishlists(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWishlists")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	wishlists, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wishlists")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wishlists retrieved successfully")

	response.WithJSON(w, http.StatusOK, wishlists)
}

// GetWishlistByID retrieves one of the user's wishlists by ID.
// @Summary Get a wishlist by ID
// @Description Retrieve a wishlist and its saved resources. Only visible to its owner.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param id path string true "Wishlist ID"
// @Success 200 {object} response.Data[dto.WishlistResponse] "Wishlist details"
// @Failure 404 {object} response.Error
// @Router /v1/wishlists/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetWishlistByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWishlistByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	wishlist, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wishlist")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wishlist retrieved successfully")

	response.WithJSON(w, http.StatusOK, wishlist)
}

// UpdateWishlist renames a wishlist.
// @Summary Update a wishlist by ID
// @Description Rename a wishlist. Only its owner may update it.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param id path string true "Wishlist ID"
// @Param request body dto.UpdateWishlistRequest true "Update Wishlist Request"
// @Success 200 {object} response.Message "Wishlist updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/wishlists/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateWishlist")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateWishlistRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update wishlist")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wishlist updated successfully")

	response.WithMessage(w, http.StatusOK, "Wishlist updated successfully")
}

// DeleteWishlist deletes a wishlist and its saved resources.
// @Summary Delete a wishlist by ID
// @Description Delete a wishlist. Only its owner may delete it.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param id path string true "Wishlist ID"
// @Success 200 {object} response.Message "Wishlist deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/wishlists/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteWishlist")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete wishlist")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wishlist deleted successfully")

	response.WithMessage(w, http.StatusOK, "Wishlist deleted successfully")
}

// ToggleResource adds a resource to the wishlist, or removes it when already saved.
// @Summary Toggle a resource on a wishlist
// @Description Save the resource on the wishlist if absent, remove it if present.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param id path string true "Wishlist ID"
// @Param resourceID path string true "Resource ID"
// @Success 200 {object} response.Data[dto.ToggleResourceResponse] "Toggle result"
// @Failure 404 {object} response.Error
// @Router /v1/wishlists/{id}/resources/{resourceID} [put]
// @Security BearerAuth
func (handler *Handler) ToggleResource(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleResource")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	resourceID := chi.URLParam(r, constant.RequestParamResourceID)

	res, err := handler.service.ToggleResource(ctx, id, resourceID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle wishlist resource")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wishlist resource toggled successfully")

	response.WithJSON(w, http.StatusOK, res)
}
