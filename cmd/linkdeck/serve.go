package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/linkdeck/linkdeck/internal/api"
	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/db"
	"github.com/linkdeck/linkdeck/internal/ingest"
	"github.com/linkdeck/linkdeck/internal/metadata"
	"github.com/linkdeck/linkdeck/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			userStore := store.NewUserStore(database)
			linkStore := store.NewLinkStore(database)
			tokenStore := auth.NewSQLTokenStore(database)

			// Metadata sources are tried in order; the backend is optional
			// and skipped when unconfigured.
			var sources []metadata.Source
			if cfg.Metadata.BackendURL != "" {
				sources = append(sources, metadata.NewBackendSource(cfg.Metadata.BackendURL, cfg.Metadata.Timeout))
			}
			sources = append(sources, metadata.NewRelaySource(cfg.Metadata.RelayURL, cfg.Metadata.Timeout))
			resolver := metadata.NewChainResolver(cfg.Metadata.Timeout, sources...)

			ingestSvc := ingest.New(resolver, linkStore)
			bearerAuth := auth.NewBearerTokenMiddleware(tokenStore, userStore)

			router := api.NewRouter(api.Deps{
				BearerAuth: bearerAuth,
				Ingest:     ingestSvc,
				LinkStore:  linkStore,
				UserStore:  userStore,
				TokenStore: tokenStore,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
