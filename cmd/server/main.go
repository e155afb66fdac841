package main

import (
    "context"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/campusgrid/school-seat-reservation/internal/allocation"
    "github.com/campusgrid/school-seat-reservation/internal/booking"
    "github.com/campusgrid/school-seat-reservation/internal/config"
    "github.com/campusgrid/school-seat-reservation/internal/database"
    "github.com/campusgrid/school-seat-reservation/internal/handler"
    "github.com/campusgrid/school-seat-reservation/internal/middleware"
    "github.com/campusgrid/school-seat-reservation/internal/queue"
    "github.com/campusgrid/school-seat-reservation/internal/repository"
    "github.com/campusgrid/school-seat-reservation/internal/router"
    "github.com/campusgrid/school-seat-reservation/internal/model"
    queue_publisher "github.com/campusgrid/school-seat-reservation/internal/service"
    "github.com/campusgrid/school-seat-reservation/internal/utils"
)

// The booking engines look up rooms, cots, buses and seats through a
// uniform GetByID method, while the repositories expose entity-specific
// names; these wrappers bridge the two without changing either side.
type hostelRoomStore struct{ *repository.HostelRepo }

func (s hostelRoomStore) GetByID(ctx context.Context, roomID, schoolID uint64) (*model.HostelRoom, error) {
    return s.GetRoomByID(ctx, roomID, schoolID)
}

type hostelCotStore struct{ *repository.HostelRepo }

func (s hostelCotStore) GetByID(ctx context.Context, cotID, schoolID uint64) (*model.HostelCot, error) {
    return s.GetCotByID(ctx, cotID, schoolID)
}

type busStore struct{ *repository.BusRepo }

func (s busStore) GetByID(ctx context.Context, busID, schoolID uint64) (*model.Bus, error) {
    return s.GetBusByID(ctx, busID, schoolID)
}

type busSeatStore struct{ *repository.BusRepo }

func (s busSeatStore) GetByID(ctx context.Context, seatID, schoolID uint64) (*model.BusSeat, error) {
    return s.GetSeatByID(ctx, seatID, schoolID)
}

func main() {
    // .env is optional; real deployments inject environment directly.
    _ = godotenv.Load()

    cfg := config.Load()
    logger := config.NewLogger(cfg.Env)
    defer func() { _ = logger.Sync() }()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        logger.Fatal("database connect failed", zap.Error(err))
    }
    defer func() { _ = db.Close() }()

    if err := database.Migrate(context.Background(), db); err != nil {
        logger.Fatal("migrations failed", zap.Error(err))
    }
    if v, err := database.MigrationVersion(context.Background(), db); err == nil {
        logger.Info("schema ready", zap.Int64("version", v))
    }

    // Redis is optional: without it, rate limiting and the response
    // cache degrade to pass-throughs.
    rdb := config.NewRedisClient()
    if rdb == nil {
        logger.Warn("redis unavailable, rate limiting and caching disabled")
    }

    // ---- repositories ----
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    students := repository.NewStudentRepo(db)
    examRooms := repository.NewExamRoomRepo(db)
    schedules := repository.NewExamScheduleRepo(db)
    allocs := repository.NewExamAllocationRepo(db)
    hostel := repository.NewHostelRepo(db)
    hostelBookings := repository.NewHostelBookingRepo(db)
    buses := repository.NewBusRepo(db)
    busBookings := repository.NewBusBookingRepo(db)

    // ---- engines ----
    events := queue_publisher.Events{}
    allocEngine := allocation.NewEngine(schedules, examRooms, allocs, students, users)
    hostelEngine := booking.NewHostelEngine(hostelRoomStore{hostel}, hostelCotStore{hostel}, hostelBookings, students, events)
    busEngine := booking.NewBusEngine(busStore{buses}, busSeatStore{buses}, busBookings, students, events)

    // ---- HTTP ----
    e := echo.New()
    e.HideBanner = true
    e.Validator = utils.NewRequestValidator()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    authHandler := handler.NewAuthHandler(cfg, users, tokens)
    examHandler := handler.NewExamHandler(examRooms, schedules, allocs, allocEngine)
    hostelHandler := handler.NewHostelHandler(hostel, hostelBookings, hostelEngine)
    busHandler := handler.NewBusHandler(buses, busBookings, busEngine)
    studentHandler := handler.NewStudentHandler(students)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)
    router.RegisterExam(e, examHandler, cfg.JWTSecret, cached)
    router.RegisterHostel(e, hostelHandler, cfg.JWTSecret, cached)
    router.RegisterBus(e, busHandler, cfg.JWTSecret, cached)
    router.RegisterStudents(e, studentHandler, cfg.JWTSecret)

    // Audit consumer runs for the lifetime of the process and
    // reconnects on broker failures.
    go func() {
        if err := queue.StartAuditConsumer(logger); err != nil {
            logger.Warn("audit consumer stopped", zap.Error(err))
        }
    }()

    addr := ":" + cfg.Port
    logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
    if err := e.Start(addr); err != nil {
        logger.Fatal("server stopped", zap.Error(err))
    }
}
