// Package app wires configuration, storage and services for the server and
// the command line tool.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"musafir/config"
	"musafir/database"
	"musafir/pkg/ai"
	"musafir/pkg/geocode"
	"musafir/router"

	authCtrlImp "musafir/pkg/auth/controllerImp"
	healthCtrlImp "musafir/pkg/health/controllerImp"

	placeRepo "musafir/pkg/place/repository"
	placeRepoImp "musafir/pkg/place/repositoryImp"

	plannerCtrlImp "musafir/pkg/planner/controllerImp"
	plannerSvcImp "musafir/pkg/planner/serviceImp"

	sessionRepoImp "musafir/pkg/session/repositoryImp"

	tripCtrlImp "musafir/pkg/trip/controllerImp"
	tripRepoImp "musafir/pkg/trip/repositoryImp"
	tripSvc "musafir/pkg/trip/service"
	tripSvcImp "musafir/pkg/trip/serviceImp"

	userCtrlImp "musafir/pkg/user/controllerImp"
	userRepoImp "musafir/pkg/user/repositoryImp"
	userSvc "musafir/pkg/user/service"
	userSvcImp "musafir/pkg/user/serviceImp"

	"musafir/pkg/seed"
)

type App struct {
	Cfg      config.AppConfig
	DB       *gorm.DB
	LLM      ai.Client
	Geocoder geocode.Resolver

	Places  placeRepo.PlaceRepository
	Trips   tripSvc.TripService
	Users   userSvc.UserService
	Planner *plannerSvcImp.PlannerSvc
}

// ConfigureLogging applies the log level and format of cfg to the standard
// logrus logger.
func ConfigureLogging(cfg config.AppConfig) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func New(cfg config.AppConfig) (*App, error) {
	db, err := database.OpenSQLite(cfg.DBPath, database.Options{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		return nil, err
	}

	places := placeRepoImp.New(db)
	trips := tripRepoImp.New(db)
	sessions := sessionRepoImp.New(db)

	a := &App{
		Cfg:      cfg,
		DB:       db,
		LLM:      newLLM(cfg),
		Geocoder: newGeocoder(cfg, places),
		Places:   places,
		Trips:    tripSvcImp.New(trips, places),
		Users:    userSvcImp.New(userRepoImp.New(db)),
	}
	a.Planner = plannerSvcImp.NewPlannerService(plannerSvcImp.Deps{
		LLM:            a.LLM,
		Model:          cfg.LLMModel,
		Sessions:       sessions,
		Places:         places,
		Trips:          trips,
		Geocoder:       a.Geocoder,
		GeocodeWorkers: cfg.GeocodeWorkers,
	})

	if cfg.SeedFile != "" {
		rep, err := seed.LoadFile(context.Background(), places, cfg.SeedFile)
		if err != nil {
			log.WithError(err).WithField("file", cfg.SeedFile).Warn("[seed] catalogue not loaded")
		} else {
			log.WithFields(log.Fields{"rows": rep.Rows, "places": rep.Places, "skipped": rep.Skipped}).Info("[seed] catalogue loaded")
		}
	}

	log.WithFields(log.Fields{
		"db":       cfg.DBPath,
		"llm":      a.llmMode(),
		"model":    cfg.LLMModel,
		"geocoder": a.geocoderMode(),
	}).Info("[app] ready")
	return a, nil
}

func newLLM(cfg config.AppConfig) ai.Client {
	if !cfg.UseLLM() {
		log.Warn("[app] LLM_ENDPOINT/LLM_API_KEY not set, using offline mock completions")
		return ai.NewMock()
	}
	return ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel,
		ai.WithTimeout(cfg.LLMTimeout),
		ai.WithTemperature(cfg.LLMTemperature),
	)
}

// stored places answer first, then the (cached) remote geocoder
func newGeocoder(cfg config.AppConfig, places placeRepo.PlaceRepository) geocode.Resolver {
	if !cfg.GeocoderEnabled || cfg.GeocoderURL == "" {
		return geocode.FromStore(places)
	}
	remote := geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout)
	return geocode.Chain(geocode.FromStore(places), geocode.Cached(remote, cfg.GeocodeCacheTTL))
}

func (a *App) llmMode() string {
	if a.Cfg.UseLLM() {
		return "openai"
	}
	return "mock"
}

func (a *App) geocoderMode() string {
	if a.Cfg.GeocoderEnabled && a.Cfg.GeocoderURL != "" {
		return "nominatim"
	}
	return "disabled"
}

// Server builds the HTTP surface.
func (a *App) Server() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	hCtrl := healthCtrlImp.NewHealthCtrl(a.DB, healthCtrlImp.Components{
		LLM:      a.llmMode(),
		Model:    a.Cfg.LLMModel,
		Geocoder: a.geocoderMode(),
	})
	return router.New(
		e,
		plannerCtrlImp.New(a.Planner, a.Cfg.UploadMaxBytes),
		tripCtrlImp.New(a.Trips),
		userCtrlImp.New(a.Users),
		authCtrlImp.NewAuthController(a.Users),
		hCtrl,
	)
}

func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return fmt.Errorf("closing db: %w", err)
	}
	return sqlDB.Close()
}
