package main

import (
	"roost/config"
	"roost/di"
	"roost/shared/logger"
)

// @title Roost API
// @version 1.0
// @description Short-term rental marketplace backend. Rooms and experiences, bookings with conflict-free admission, wishlists.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
