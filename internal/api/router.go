package api

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	agendaHttp "github.com/nekogravitycat/room-booking-backend/internal/agenda/http"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/room-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/room-booking-backend/internal/reservation/http"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
)

// Config holds everything the router needs to register handlers.
type Config struct {
	IsProduction       bool
	ProdOrigins        string
	Registry           *room.Registry
	ReservationService reservation.Service
	Engine             *availability.Engine
	JWTManager         *auth.JWTManager
	Logger             *slog.Logger
	RequestTimeout     time.Duration
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Global Middleware:
	// - RequestLogger: request id and a structured access log line.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	// - Timeout: per-request deadline for store and lock calls.
	r.Use(RequestLogger(logger), gin.Recovery(), Timeout(cfg.RequestTimeout))

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		var origins []string
		for _, o := range strings.Split(cfg.ProdOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	roomHandler := roomHttp.NewHandler(cfg.Registry)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService, cfg.Registry)
	availabilityHandler := availabilityHttp.NewHandler(cfg.Engine, cfg.Registry)
	agendaHandler := agendaHttp.NewHandler(cfg.Engine, cfg.Registry)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
		agendaHttp.RegisterRoutes(v1, agendaHandler, authMiddleware)
	}

	return r
}
