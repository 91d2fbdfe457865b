package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/aiongo/internal/config"
	"github.com/udisondev/aiongo/internal/data"
	"github.com/udisondev/aiongo/internal/db"
	"github.com/udisondev/aiongo/internal/game/augment"
	"github.com/udisondev/aiongo/internal/game/item"
	"github.com/udisondev/aiongo/internal/game/trade"
	"github.com/udisondev/aiongo/internal/gameserver"
	"github.com/udisondev/aiongo/internal/gameserver/admin"
	"github.com/udisondev/aiongo/internal/gameserver/admin/commands"
	"github.com/udisondev/aiongo/internal/model"
	"github.com/udisondev/aiongo/internal/world"
)

const (
	GameConfigPath = "config/gameserver.yaml"

	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfgPath := GameConfigPath
	if p := os.Getenv("AIONGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading game config: %w", err)
	}
	if dsn := os.Getenv("AIONGO_DB_DSN"); dsn != "" {
		cfg.Database.DSNOverride = dsn
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("aiongo game server starting", "config", cfgPath, "log_level", cfg.LogLevel)

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	catalog, err := data.LoadCatalog(cfg.Data)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	slog.Info("catalog loaded",
		"items", catalog.Items.Count(),
		"goods_lists", catalog.GoodsLists.Count(),
		"trade_lists", len(catalog.TradeLists.All()))

	itemRepo := db.NewItemRepository(database.Pool())
	stoneRepo := db.NewItemStoneRepository(database.Pool())

	// Персистентные object ID предметов нельзя выдать повторно
	ids := world.NewItemIDFactory()
	used, err := itemRepo.UsedObjectIDs(ctx)
	if err != nil {
		return fmt.Errorf("loading used item ids: %w", err)
	}
	if err := ids.LockIDs(used); err != nil {
		return fmt.Errorf("locking used item ids: %w", err)
	}
	slog.Info("item id factory ready", "used", ids.UsedCount())

	var stones item.StoneLoader = stoneRepo
	var stoneCache *db.ItemStoneCache
	if cfg.ItemStoneCache.Size > 0 {
		stoneCache = db.NewItemStoneCache(stoneRepo, cfg.ItemStoneCache.Size, cfg.ItemStoneCache.TTL)
		stones = stoneCache
	}
	persister := db.NewInventoryPersistenceService(database.Pool(), itemRepo, stoneRepo, stoneCache)

	clients := gameserver.NewClientManager(cfg.SendQueueSize)
	gameWorld := world.New()
	if err := spawnMerchants(gameWorld, catalog.TradeLists); err != nil {
		return fmt.Errorf("spawning merchants: %w", err)
	}
	slog.Info("merchants spawned", "count", countMerchants(gameWorld, catalog.TradeLists))

	items := item.NewService(ids, catalog.Items, stones, clients)
	stoneSvc := augment.NewService(catalog.Items)
	shops := trade.NewService(items, gameWorld, catalog.TradeLists, catalog.GoodsLists, clients, cfg.Trade)

	adminHandler := admin.NewHandler()
	commands.RegisterAll(adminHandler, items, stoneSvc, shops)
	slog.Info("admin commands registered", "count", adminHandler.AdminCommandCount())

	sessions := gameserver.NewSessionManager(clients, gameWorld, itemRepo, items, persister, cfg.Inventory.CubeLimit)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Admin.Enabled {
		router := admin.NewRouter(gameWorld, database,
			admin.WithSessions(sessions),
			admin.WithCommands(adminHandler))
		srv := &http.Server{
			Addr:              cfg.Admin.BindAddress,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("starting admin http", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("admin http: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down, saving inventories", "players", gameWorld.PlayerCount())
		saveCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return leaveAll(saveCtx, gameWorld, sessions)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// spawnMerchants ставит в мир по одному NPC на каждый trade list.
func spawnMerchants(w *world.World, shops *data.TradeListData) error {
	gen := world.NewObjectIDGenerator()
	for _, tl := range shops.All() {
		npc := model.NewNpc(gen.NextNpcID(), tl.NpcID, tl.Name)
		if err := w.AddNpc(npc); err != nil {
			return fmt.Errorf("npc %d: %w", tl.NpcID, err)
		}
		slog.Debug("merchant spawned", "npcID", tl.NpcID, "objectID", npc.ObjectID(), "name", tl.Name)
	}
	return nil
}

// countMerchants считает NPC мира, у которых есть trade list.
func countMerchants(w *world.World, shops *data.TradeListData) int {
	n := 0
	w.ForEachNpc(func(npc *model.Npc) bool {
		if shops.TradeListTemplate(npc.TemplateID()) != nil {
			n++
		}
		return true
	})
	return n
}

// leaveAll выводит из мира всех online игроков с сохранением инвентаря;
// ошибки отдельных игроков собираются.
func leaveAll(ctx context.Context, w *world.World, sessions *gameserver.SessionManager) error {
	var ids []uint32
	w.ForEachPlayer(func(p *model.Player) bool {
		ids = append(ids, p.ObjectID())
		return true
	})

	var errs []error
	for _, id := range ids {
		if err := sessions.LeaveWorld(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("player %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
