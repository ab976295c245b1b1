package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"patientbooking/cmd/internal/config"
	"patientbooking/cmd/internal/domain/database"
	"patientbooking/cmd/internal/domain/database/repository"
	"patientbooking/cmd/internal/metrics"
	"patientbooking/cmd/internal/routes"
	"patientbooking/cmd/internal/service"
	"patientbooking/cmd/internal/utils"
	"patientbooking/cmd/internal/utils/validators"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "patientbooking",
		Short: "Clinic appointment booking API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the booking API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log.SetLevel(logLevel(cfg.LogLevel))

			db, err := database.Init(cfg.Database)
			if err != nil {
				return err
			}
			log.Infof("schema migrated on %s", cfg.Database.Driver)

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.SetLevel(logLevel(cfg.LogLevel))

	db, err := database.Init(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	validate := validators.New()
	clock := utils.Clock(utils.NowUTC)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	// Getting repositories
	bookingRepo := repository.NewBookingRepository(db)
	clinicRepo := repository.NewClinicRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)

	// Getting services
	bookingValidator := service.NewBookingValidator(bookingRepo, clock)
	bookingService := service.NewBookingService(bookingRepo, patientRepo, bookingValidator, validate, clock, collector)
	clinicService := service.NewClinicService(clinicRepo, validate, clock)
	doctorService := service.NewDoctorService(doctorRepo, validate, clock)
	patientService := service.NewPatientService(patientRepo, clinicRepo, validate, clock)

	e := echo.New()
	e.HideBanner = cfg.IsProduction()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(collector.Middleware())

	routes.Register(e, routes.Handlers{
		Bookings: routes.NewBookingDefault(bookingService),
		Clinics:  routes.NewClinicDefault(clinicService),
		Doctors:  routes.NewDoctorDefault(doctorService),
		Patients: routes.NewPatientDefault(patientService),
		Health:   routes.NewHealthDefault(sqlDB),
	})
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))

	go func() {
		log.Infof("listening on %s (%s, %s)", cfg.Address(), cfg.Env, cfg.Database.Driver)
		if err := e.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

func logLevel(name string) log.Lvl {
	switch name {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
