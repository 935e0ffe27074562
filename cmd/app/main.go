package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/controlfile"
	"fulfillment/internal/adapters/out/memstore"
	pgadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/steprepo"
	"fulfillment/internal/adapters/out/redisstore"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	controlDoc, err := controlfile.LoadControlDocument(configs.ControlFilePath)
	if err != nil {
		log.Fatalf("Error loading control document: %v", err)
	}

	openable, err := controlDoc.OpenableStages()
	if err != nil {
		log.Fatalf("Error reading allowed steps: %v", err)
	}

	graph, err := controlfile.LoadOrderGraph(configs.OrdersFilePath)
	if err != nil {
		log.Fatalf("Error loading order graph: %v", err)
	}

	store, uowFactory, err := buildStore(configs)
	if err != nil {
		log.Fatalf("Error building step state store: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, graph, openable, store, uowFactory)

	if err = repairPointerAtStartup(&app); err != nil {
		log.Fatalf("Error repairing stage pointer: %v", err)
	}

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	runWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:        envOrDefault("HTTP_PORT", "8080"),
		StoreDriver:     envOrDefault("STORE_DRIVER", "memory"),
		StoreScope:      envOrDefault("STORE_SCOPE", cmd.DefaultStoreScope),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ControlFilePath: envOrDefault("CONTROL_FILE", "control.yaml"),
		OrdersFilePath:  envOrDefault("ORDERS_FILE", "orders.json"),
	}

	if raw := os.Getenv("ADMIN_KEYS"); raw != "" {
		config.AdminKeys = strings.Split(raw, ",")
	}

	return config
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func buildStore(config cmd.Config) (ports.StepStateStore, ports.UnitOfWorkFactory, error) {
	switch config.StoreDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.DBHost, config.DBPort, config.DBUser,
			config.DBPassword, config.DBName, config.DBSslMode,
		)

		db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err = db.AutoMigrate(&steprepo.OutcomeDTO{}, &steprepo.PointerDTO{}); err != nil {
			return nil, nil, fmt.Errorf("migrate step state tables: %w", err)
		}

		store := steprepo.NewGormStepStateRepository(db, config.StoreScope)
		return store, pgadapter.NewGormUnitOfWorkFactory(db, config.StoreScope), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		})

		store := redisstore.NewStore(client, config.StoreScope)
		return store, redisstore.NewUnitOfWorkFactory(client, config.StoreScope), nil

	case "memory":
		store := memstore.NewStore()
		return store, memstore.NewUnitOfWorkFactory(store), nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", config.StoreDriver)
	}
}

func repairPointerAtStartup(app *cmd.CompositionRoot) error {
	repairCmd, err := commands.NewRepairPointerCommand()
	if err != nil {
		return err
	}

	handler := app.CreateRepairPointerCommandHandler()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return handler.Handle(ctx, repairCmd)
}

func runWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateApplyDecisionCommandHandler(),
		app.CreateAdvanceStageCommandHandler(),
		app.CreateGetCurrentStageQueryHandler(),
		app.CreateGetStageItemsQueryHandler(),
		app.CreateGetExceptionItemsQueryHandler(),
	)
	server.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil &&
			err != nethttp.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		e.Logger.Fatal(err)
	}
}
