// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faredeck/internal/aggregate"
	"faredeck/internal/http/handlers"
	"faredeck/internal/http/middleware"
	"faredeck/internal/provider"
)

func NewRouter(agg *aggregate.Service, registry *provider.Registry) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	rideHandler := handlers.NewRideHandler(agg, registry)
	r.GET("/api/rides", rideHandler.Aggregate)
	r.GET("/api/rides/:provider/fare", rideHandler.Estimate)
	r.POST("/api/rides/:provider/book", rideHandler.Book)
	r.GET("/api/rides/:provider/status/:id", rideHandler.Status)
	r.DELETE("/api/rides/:provider/cancel/:id", rideHandler.Cancel)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
