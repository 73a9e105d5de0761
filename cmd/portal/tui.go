package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/only/profile-portal/internal/core/authform"
	"github.com/only/profile-portal/internal/core/service"
	"github.com/only/profile-portal/internal/infrastructure/db/memory"
	"github.com/only/profile-portal/internal/pkg/config"
	"github.com/only/profile-portal/internal/tui"
	"github.com/only/profile-portal/internal/web/i18n"
	"github.com/only/profile-portal/pkg/logger"
)

func newTUICmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the login form in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			// The program owns the terminal; logs would corrupt the screen.
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Output: io.Discard})

			store, err := memory.FromSeeds(memory.Registered, cfg.Auth.HashCost)
			if err != nil {
				return err
			}
			translator, err := i18n.New()
			if err != nil {
				return err
			}

			m := tui.New(
				service.NewAuthenticator(store, log),
				translator.For(lang),
				authform.WithDelay(cfg.Auth.Delay),
			)
			return tui.Run(m)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "en", "interface language (en, ru)")

	return cmd
}
