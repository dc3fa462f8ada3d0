package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hanksha/strajk-bowling-booking/client"
	"github.com/hanksha/strajk-bowling-booking/config"
	"github.com/hanksha/strajk-bowling-booking/confirmation"
	"github.com/hanksha/strajk-bowling-booking/form"
	"github.com/hanksha/strajk-bowling-booking/logging"
	"github.com/hanksha/strajk-bowling-booking/session"
	"go.uber.org/zap"
)

func main() {
	dotEnvErr := config.LoadDotEnv()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		apiURL  = flag.String("api", cfg.APIURL, "booking API base URL")
		date    = flag.String("date", "", "booking date, e.g. 2025-01-10")
		clock   = flag.String("time", "", "booking time, e.g. 14:00")
		players = flag.Int("players", 1, "number of players")
		lookup  = flag.String("lookup", "", "show an existing booking by number instead of booking")
		shoes   = shoeSizes{}
		remove  = playerList{}
	)
	flag.Var(shoes, "shoe", "shoe size as player=size, repeatable")
	flag.Var(&remove, "remove-shoe", "player whose shoe size is dropped before submitting, repeatable")
	flag.Parse()

	logger, err := logging.New(logging.Options{Path: cfg.LogPath, FileName: "booker.log", Debug: cfg.Debug})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	warnDotEnv(logger, dotEnvErr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.NewClient(*apiURL, client.WithLookupTTL(cfg.LookupCacheTTL))

	if *lookup != "" {
		os.Exit(showBooking(ctx, api, *lookup))
	}

	storage := session.New(cfg.SessionTTL)
	defer storage.Clear()

	logger = logger.With(zap.String("session", storage.ID()))

	f := form.New(api, storage, logger)
	f.SetDate(*date)
	f.SetTime(*clock)
	f.SetPlayerCount(*players)

	for player, size := range shoes {
		if err := f.SetShoeSize(player, size); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	for _, player := range remove {
		f.RemoveShoeSize(player)
	}

	fmt.Printf("Antal banor som bokas: %d (1 bana per 4 spelare)\n\n", f.Lanes())

	if _, err := f.Submit(ctx); err != nil {
		if errors.Is(err, form.ErrBookingFailed) {
			fmt.Fprintln(os.Stderr, form.AlertMessage)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	view := confirmation.Load(storage, logger)
	if err := view.Render(os.Stdout); err != nil {
		logger.Error("failed to render confirmation", zap.Error(err))
		os.Exit(1)
	}
}

// warnDotEnv reports a missing or unreadable .env file; the CLI still runs on
// the process environment and flag defaults.
func warnDotEnv(logger *zap.Logger, err error) {
	if err != nil {
		logger.Warn("no .env file loaded", zap.Error(err))
	}
}

func showBooking(ctx context.Context, api *client.Client, number string) int {
	booking, err := api.GetBooking(ctx, number)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := confirmation.New(booking).Render(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
