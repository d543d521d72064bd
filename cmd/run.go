package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/app"
	"github.com/abhisek/bridgewise/internal/config"
	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/game"
	"github.com/abhisek/bridgewise/internal/questionbank"
	"github.com/abhisek/bridgewise/internal/store"
)

// runtime holds what every command opens: configuration, the log, the store
// and the world bank.
type runtime struct {
	cfg    config.Config
	logger *slog.Logger
	store  *store.Store
	rules  economy.Rules
	bank   *questionbank.Bank
	logf   io.Closer
}

// openRuntime loads the configuration and opens the store named by --db,
// BRIDGEWISE_DB or the default path.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, logf, err := cfg.SetupLogger()
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	rt := &runtime{cfg: cfg, logger: logger, logf: logf}

	rt.rules, err = cfg.Rules()
	if err != nil {
		rt.Close()
		return nil, err
	}

	packs, _ := cmd.Flags().GetStringSlice("pack")
	if len(packs) == 0 {
		packs = cfg.Packs
	}
	rt.bank, err = questionbank.Load(packs...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load world packs: %w", err)
	}

	flag, _ := cmd.Flags().GetString("db")
	dbPath, err := cfg.ResolveDBPath(flag)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	rt.store, err = store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("runtime ready", "db", dbPath, "worlds", rt.bank.Len(), "packs", len(packs))
	return rt, nil
}

// Close releases the store and the log file.
func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn("close store", "err", err)
		}
	}
	if rt.logf != nil {
		rt.logf.Close()
	}
}

// services loads the saved profile and wires it to the store.
func (rt *runtime) services(cmd *cobra.Command) (*game.Services, error) {
	p, err := rt.store.LoadOrCreateProfile(cmd.Context(), rt.rules)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return game.New(game.Options{
		Profile:  p,
		Sink:     rt.store.Sink(),
		Bank:     rt.bank,
		Rules:    rt.rules,
		Events:   rt.store.EventRepo(),
		Recorder: rt.store.SessionRecorder(),
		Logger:   rt.logger,
	}), nil
}

// runApp opens the runtime and launches the TUI, optionally straight into
// world. Without a world the splash screen runs first.
func runApp(cmd *cobra.Command, world int) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc, err := rt.services(cmd)
	if err != nil {
		return err
	}
	return app.Run(app.Options{Services: svc, StartWorld: world, Welcome: world <= 0})
}
