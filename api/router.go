package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(logger *zap.Logger, allowedOrigins []string, bookingHandler *BookingHandler) *gin.Engine {
	r := gin.New()
	r.Use(
		Recovery(logger),
		RequestID(),
		RequestLogger(logger),
		CORS(allowedOrigins),
	)

	apiRouter := r.Group("/api")
	NewHealthHandler().Register(apiRouter)

	bookingHandler.Register(apiRouter.Group("/bookings"))

	return r
}
