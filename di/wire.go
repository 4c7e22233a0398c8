//go:build wireinject
// +build wireinject

package di

import (
	"roost/config"
	"roost/infras/jwt"
	"roost/infras/kafka"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/infras/redis"
	"roost/infras/s3"
	"roost/permissions"
	"roost/shared/cache"
	"roost/transport/http"
	"roost/transport/http/middleware"
	"roost/transport/http/router"

	authService "roost/internal/domains/auth/service"
	bookingRepository "roost/internal/domains/booking/repository"
	bookingService "roost/internal/domains/booking/service"
	resourceRepository "roost/internal/domains/resource/repository"
	resourceService "roost/internal/domains/resource/service"
	userRepository "roost/internal/domains/user/repository"
	userService "roost/internal/domains/user/service"
	wishlistRepository "roost/internal/domains/wishlist/repository"
	wishlistService "roost/internal/domains/wishlist/service"

	authHandler "roost/internal/handlers/auth"
	bookingHandler "roost/internal/handlers/booking"
	resourceHandler "roost/internal/handlers/resource"
	userHandler "roost/internal/handlers/user"
	wishlistHandler "roost/internal/handlers/wishlist"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var resourceDomain = wire.NewSet(
	resourceRepository.New,
	resourceRepository.NewSlot,
	resourceService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var wishlistDomain = wire.NewSet(
	wishlistRepository.New,
	wishlistRepository.NewItem,
	wishlistService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	resourceDomain,
	bookingDomain,
	wishlistDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	resourceHandler.New,
	bookingHandler.New,
	wishlistHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
