package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/commands"
	"github.com/futbolrp/transferbot/transferbot/commands/admin"
	"github.com/futbolrp/transferbot/transferbot/commands/economy"
	"github.com/futbolrp/transferbot/transferbot/commands/transfer"
	"github.com/futbolrp/transferbot/transferbot/handlers"
	"github.com/futbolrp/transferbot/transferbot/jobs"
	"github.com/futbolrp/transferbot/transferbot/logger"
	"github.com/futbolrp/transferbot/transferbot/negotiation"
	"github.com/futbolrp/transferbot/transferbot/permissions"
	"github.com/futbolrp/transferbot/transferbot/store"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	slog.Info("Starting TransferBot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := transferbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	b := transferbot.New(*cfg, version, commit)

	h := handler.New()
	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		logger.LogError("Failed to setup bot", err)
		os.Exit(-1)
	}

	dir := cfg.Data.Dir
	b.Ledger = store.NewLedgerStore(dir, cfg.Game.WorkPayout, cfg.Game.WorkCooldown)
	b.Shop = store.NewShopStore(dir)
	b.Roles = store.NewRoleConfigStore(dir)
	b.History = store.NewTransferHistoryStore(dir)
	b.Cooldowns = store.NewCooldownStore(dir, cfg.Game.CommandCooldown)
	b.Tracker = store.NewTrackerStore(dir)

	b.Permissions = permissions.New(b.Roles, b.Client.Rest())
	b.Negotiations = negotiation.NewEngine(b.Client, negotiation.Config{
		TTL:      cfg.Game.NegotiationTTL,
		Grace:    cfg.Game.TeardownGrace,
		Category: cfg.Game.NegotiationGroup,
	}, b.Permissions, b.Roles, b.Ledger, b.History, b.Tracker)
	b.Sweeper = negotiation.NewSweeper(b.Client, b.Negotiations, cfg.Game.NegotiationTTL)

	// Economy commands
	h.Command("/balance", handlers.WrapWithLogging("balance", economy.BalanceHandler(b)))
	h.Command("/pay", handlers.WrapWithLogging("pay", economy.PayHandler(b)))
	h.Command("/deposit", handlers.WrapWithLogging("deposit", economy.DepositHandler(b)))
	h.Command("/withdraw", handlers.WrapWithLogging("withdraw", economy.WithdrawHandler(b)))
	h.Command("/work", handlers.WrapWithLogging("work", economy.WorkHandler(b)))
	h.Command("/shop", handlers.WrapWithLogging("shop", economy.ShopHandler(b)))
	h.Command("/additem", handlers.WrapWithLogging("additem", economy.AddItemHandler(b)))
	h.Command("/removeitem", handlers.WrapWithLogging("removeitem", economy.RemoveItemHandler(b)))
	h.Command("/buy", handlers.WrapWithLogging("buy", economy.BuyHandler(b)))
	h.Command("/inventory", handlers.WrapWithLogging("inventory", economy.InventoryHandler(b)))

	// Transfer commands
	h.Command("/offer", handlers.WrapWithLogging("offer", transfer.OfferHandler(b)))
	h.Command("/contract", handlers.WrapWithLogging("contract", transfer.ContractHandler(b)))
	h.Command("/loan", handlers.WrapWithLogging("loan", transfer.LoanHandler(b)))
	h.Command("/trade", handlers.WrapWithLogging("trade", transfer.TradeHandler(b)))
	h.Command("/release", handlers.WrapWithLogging("release", transfer.ReleaseHandler(b)))
	h.Command("/transfers", handlers.WrapWithLogging("transfers", transfer.TransfersHandler(b)))
	h.Command("/mytransfer", handlers.WrapWithLogging("mytransfer", transfer.MyTransferHandler(b)))

	// Admin commands
	h.Command("/setup", handlers.WrapWithLogging("setup", admin.SetupHandler(b)))
	h.Command("/roles", handlers.WrapWithLogging("roles", admin.RolesHandler(b)))
	h.Command("/resetroles", handlers.WrapWithLogging("resetroles", admin.ResetRolesHandler(b)))
	h.Command("/transferperiod", handlers.WrapWithLogging("transferperiod", admin.TransferPeriodHandler(b)))
	h.Command("/resetperiod", handlers.WrapWithLogging("resetperiod", admin.ResetPeriodHandler(b)))
	h.Command("/resethistory", handlers.WrapWithLogging("resethistory", admin.ResetHistoryHandler(b)))

	// Negotiation buttons and modals
	h.Component("/negotiation/accept/", handlers.WrapComponentWithLogging("negotiation-accept", b.Negotiations.HandleAccept))
	h.Component("/negotiation/reject/", handlers.WrapComponentWithLogging("negotiation-reject", b.Negotiations.HandleReject))
	h.Component("/negotiation/edit/", handlers.WrapComponentWithLogging("negotiation-edit", b.Negotiations.HandleEdit))
	h.Modal("/negotiation/form/", handlers.WrapModalWithLogging("negotiation-form", b.Negotiations.HandleForm))

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		logger.LogSystem("Syncing commands", slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			logger.LogError("Failed to sync commands", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		logger.LogError("Failed to open gateway", err)
		os.Exit(-1)
	}

	scheduler := jobs.NewScheduler(b.Sweeper, b.Cooldowns)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}
