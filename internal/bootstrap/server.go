package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/skywings/skybooking/api"
	"github.com/skywings/skybooking/config"
	"github.com/skywings/skybooking/internal/service/booking"
	"github.com/skywings/skybooking/internal/service/flights"
	"github.com/skywings/skybooking/internal/service/tracker"
)

// Run starts the HTTP server and blocks until the context is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, trackerSvc tracker.StatusTracker) error {
	srv := newServer(cfg, flightSvc, bookingSvc, trackerSvc)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, trackerSvc tracker.StatusTracker) *http.Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	v1 := engine.Group("/api/v1")

	api.NewFlightHandler(flightSvc).Register(v1.Group("/flights"))

	bookingsGroup := v1.Group("/bookings")
	api.NewBookingHandler(bookingSvc).Register(bookingsGroup)
	api.NewTrackingHandler(trackerSvc).Register(bookingsGroup)

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}
}
