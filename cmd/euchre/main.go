package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leviroth/euchre/internal/config"
	"github.com/leviroth/euchre/internal/session"
	"github.com/leviroth/euchre/internal/table"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg = config.FromEnv(cfg)

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Str("level", cfg.LogLevel).Msg("unknown log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()

	conn, err := session.Dial(cfg.NATSURL, cfg.CallTimeout())
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.NATSURL).Msg("failed to connect")
	}
	defer conn.Close()

	sess, err := session.JoinServer(ctx, conn, cfg.Lobby, cfg.PlayerName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to join server")
	}

	ui := newUI()
	tbl := table.New(sess, table.WithOnUpdate(ui.render))
	ui.table = tbl

	go ui.readInput(ctx, cancel)

	log.Info().
		Int("player", sess.Player()).
		Int("lobby", cfg.Lobby).
		Str("name", sess.Name()).
		Msg("connected")

	if err := tbl.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("table loop failed")
	}
	ui.stop()
}
