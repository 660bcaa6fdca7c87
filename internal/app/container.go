package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/room-booking-backend/internal/api"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/availability"
	"github.com/nekogravitycat/room-booking-backend/internal/notify"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	// DBPool selects durable storage. Nil keeps everything in memory.
	DBPool *pgxpool.Pool
	// Rooms is the catalog used when the store holds no rooms. Nil means room.DefaultCatalog.
	Rooms          []*room.Room
	SeedRooms      bool
	JWTSecret      string
	JWTTTL         time.Duration
	RequestTimeout time.Duration
	BusinessHours  availability.BusinessHours
	// RedisClient switches room locks from process-local to shared.
	RedisClient redis.UniversalClient
	LockTTL     time.Duration
	Publisher   notify.Publisher
	Logger      *slog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	JWTManager   *auth.JWTManager
	Registry     *room.Registry
	Reservations reservation.Service
	Engine       *availability.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seed := cfg.Rooms
	if seed == nil {
		seed = room.DefaultCatalog()
	}

	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Room Module
	var (
		registry *room.Registry
		resRepo  reservation.Repository
		err      error
	)
	if cfg.DBPool != nil {
		var roomSeed []*room.Room
		if cfg.SeedRooms {
			roomSeed = seed
		}
		registry, err = room.Load(ctx, room.NewPgxRepository(cfg.DBPool), roomSeed)
		resRepo = reservation.NewPgxRepository(cfg.DBPool)
	} else {
		registry, err = room.NewRegistry(seed)
		resRepo = reservation.NewMemoryRepository()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	// Room locks
	var locker reservation.Locker
	if cfg.RedisClient != nil {
		locker = reservation.NewRedisLocker(cfg.RedisClient, cfg.LockTTL, logger)
	} else {
		locker = reservation.NewLocalLocker()
	}

	// Reservation Module
	reservationService := reservation.NewService(resRepo, registry, locker, cfg.Publisher, logger)

	// Availability Module
	hours := cfg.BusinessHours
	if hours.Open == "" || hours.Close == "" {
		hours = availability.DefaultBusinessHours
	}
	engine := availability.NewEngine(reservationService, registry, hours)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Registry:           registry,
		ReservationService: reservationService,
		Engine:             engine,
		JWTManager:         jwtManager,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})

	return &Container{
		Router:       router,
		JWTManager:   jwtManager,
		Registry:     registry,
		Reservations: reservationService,
		Engine:       engine,
	}, nil
}
