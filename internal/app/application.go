package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/catalog"
	"github.com/Rorical/RoriSteer/internal/config"
	"github.com/Rorical/RoriSteer/internal/core"
	"github.com/Rorical/RoriSteer/internal/dispatcher"
	"github.com/Rorical/RoriSteer/internal/eventbus"
	"github.com/Rorical/RoriSteer/internal/httpapi"
	"github.com/Rorical/RoriSteer/internal/logger"
	"github.com/Rorical/RoriSteer/internal/models"
	"github.com/Rorical/RoriSteer/internal/steer"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	log        *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.SteerService
	model      *AppModel
}

type Options struct {
	Debug bool
}

func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logPath, err := config.LogPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log path: %w", err)
	}
	log, err := logger.New(logPath, opts.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Warn("event bus error", zap.String("operation", e.Operation), zap.Error(e.Err))
	})

	disp := dispatcher.NewEventDispatcher(eb)

	state := core.NewSessionState(cfg.GenerationSettings(), cfg.InitialStrength())
	if cfg.IsValid() {
		state.SetNotice(fmt.Sprintf("Profile %s ready, model %s", cfg.ActiveProfile, cfg.GetModelID()))
	} else {
		state.SetNotice("No API key: run `roristeer profile add` or set RORISTEER_API_KEY")
	}

	service := core.NewSteerService(state, NewCatalogClient(cfg, log), NewSteerClient(cfg, log), eb, log)

	log.Info("application created",
		zap.String("profile", cfg.ActiveProfile),
		zap.String("model_id", cfg.GetModelID()),
		zap.String("base_url", cfg.GetBaseURL()),
	)

	return &Application{
		config:     cfg,
		log:        log,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      NewAppModel(models.NewAppModel(cfg.GetModelID(), cfg.IsValid()), disp),
	}, nil
}

// NewCatalogClient builds the explanation search client for the active profile.
func NewCatalogClient(cfg *config.Config, log *zap.Logger) *catalog.Client {
	poster := httpapi.New(apperr.ServiceCatalog, cfg.GetAPIKey(), nil, log)
	return catalog.NewClient(poster, cfg.SearchURL(), cfg.GetModelID(), log)
}

// NewSteerClient builds the steer-chat client for the active profile.
func NewSteerClient(cfg *config.Config, log *zap.Logger) *steer.Client {
	poster := httpapi.New(apperr.ServiceSteer, cfg.GetAPIKey(), nil, log)
	return steer.NewClient(poster, cfg.SteerURL(), cfg.GetModelID(), log)
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	_ = app.log.Sync()
}
