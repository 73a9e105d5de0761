package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/core/service"
	"github.com/only/profile-portal/internal/infrastructure/db/memory"
	"github.com/only/profile-portal/internal/infrastructure/queue"
	"github.com/only/profile-portal/internal/pkg/config"
	"github.com/only/profile-portal/pkg/logger"
)

// errRejected makes the process exit with status 1 without printing an error;
// the outcome itself has already been written.
var errRejected = errors.New("authentication rejected")

type authenticateConfig struct {
	login    string
	password string
	remember bool
	delay    time.Duration
	delaySet bool
}

type outcomeJSON struct {
	Status       int    `json:"status"`
	Outcome      string `json:"outcome"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Data         struct {
		Login        string `json:"login"`
		SavePassword bool   `json:"savePassword"`
	} `json:"data"`
}

func newAuthenticateCmd() *cobra.Command {
	cfg := &authenticateConfig{}

	cmd := &cobra.Command{
		Use:   "authenticate",
		Short: "Run one login attempt against the built-in user list",
		Long: `Check a login and password the way the login form does and print the
outcome as JSON. Exits with status 1 when the attempt is rejected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.delaySet = cmd.Flags().Changed("delay")
			return runAuthenticate(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.login, "login", "", "login (email)")
	cmd.Flags().StringVar(&cfg.password, "password", "", "password")
	cmd.Flags().BoolVar(&cfg.remember, "save-password", false, "remember the password")
	cmd.Flags().DurationVar(&cfg.delay, "delay", 0, "simulated network latency; AUTH_DELAY when unset")

	return cmd
}

func runAuthenticate(ctx context.Context, out io.Writer, cfg *authenticateConfig) error {
	appCfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	delay := cfg.resolveDelay(appCfg.Auth.Delay)

	log := logger.Init(logger.Options{
		Level:   appCfg.LogLevel,
		Pretty:  appCfg.LogPretty,
		Output:  os.Stderr,
		Service: "profile-portal",
	})

	store, err := memory.FromSeeds(memory.Registered, appCfg.Auth.HashCost)
	if err != nil {
		return err
	}

	outcome := authenticateOnce(service.NewAuthenticator(store, log), log, domain.LoginAttempt{
		Identifier:     cfg.login,
		Secret:         cfg.password,
		RememberSecret: cfg.remember,
	}, delay)

	if err := writeOutcome(out, outcome); err != nil {
		return err
	}
	if outcome.Kind != domain.OutcomeSuccess {
		return errRejected
	}
	return nil
}

// authenticateOnce runs one attempt with the journal writing to the log.
func authenticateOnce(auth ports.Authenticator, log zerolog.Logger, attempt domain.LoginAttempt, delay time.Duration) domain.AuthOutcome {
	ctx, cancel := context.WithCancel(context.Background())
	journal := queue.NewDispatcher(1, queue.NewLogRepository(logger.For("attempts")), log)
	journal.Start(ctx)

	outcome := service.Await(service.Journaled(auth, journal, service.AttemptMeta{Source: domain.SourceCLI}), attempt, delay)

	cancel()
	journal.Wait()
	return outcome
}

// resolveDelay prefers an explicit --delay, zero included, over AUTH_DELAY.
func (c *authenticateConfig) resolveDelay(fallback time.Duration) time.Duration {
	if c.delaySet {
		return c.delay
	}
	return fallback
}

func writeOutcome(w io.Writer, outcome domain.AuthOutcome) error {
	var res outcomeJSON
	res.Status = outcome.StatusCode()
	res.Outcome = outcome.Kind.String()
	res.ErrorMessage = outcome.ErrorMessage
	res.Data.Login = outcome.Attempt.Identifier
	res.Data.SavePassword = outcome.Attempt.RememberSecret

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
