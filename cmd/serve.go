package cmd

import (
	"fmt"
	"log"

	"farm-market-session/controller"
	"farm-market-session/metrics"
	"farm-market-session/repository"
	"farm-market-session/service"
	"farm-market-session/util"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := util.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	decoder, err := util.NewDecoderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("token verification: %w", err)
	}
	log.Printf("Verifying tokens with %s", decoder.Algorithm())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	var notifier service.SessionNotifier
	if cfg.SMTP.Enabled() {
		notifier = service.NewEmailService(cfg.SMTP)
		log.Printf("Sign-in notices enabled via %s", cfg.SMTP.Host)
	}

	var sealer *util.Sealer
	if cfg.SessionStoreKey != "" {
		sealer = util.NewSealer(cfg.SessionStoreKey)
	} else {
		log.Println("SESSION_STORE_KEY not set, sessions will not be persisted")
	}

	svc := service.NewSessionService(decoder, store, sealer, notifier, collector)
	if _, err := svc.Restore(); err != nil {
		log.Printf("warning: could not restore previous session: %v", err)
	}
	util.StartDailyCleanup(store)

	app := fiber.New()
	controller.SetupRoutes(app, svc, collector, reg, cfg)

	port := cfg.Port
	if port == "" {
		port = "4000"
	}
	return app.Listen(":" + port)
}

func openStore(cfg util.Config) (repository.SessionRepository, error) {
	switch cfg.SessionStore {
	case "", "memory":
		return repository.NewInMemorySessionRepo(), nil
	case "postgres":
		db, err := util.InitDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		return repository.NewSessionRepository(db), nil
	}
	return nil, fmt.Errorf("unknown SESSION_STORE %q (want memory or postgres)", cfg.SessionStore)
}
