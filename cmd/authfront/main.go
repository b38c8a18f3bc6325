package main

import (
	"context"
	"database/sql"
	"embed"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	django "github.com/gofiber/template/django/v3"
	cfs "github.com/goliatone/go-composite-fs"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	authfront "github.com/hsapp/go-authfront"
	"github.com/hsapp/go-authfront/repository"
)

// Templates and assets ship embedded; disk copies take precedence so they can
// be tweaked without a rebuild.
//
//go:embed views public
var embeddedFS embed.FS

func main() {
	configPath := flag.String("config", "authfront.yml", "path to the YAML config file")
	flag.Parse()

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("authfront"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		lgr.Error("unable to load config", "error", err, "path", *configPath)
		os.Exit(1)
	}

	ctx := context.Background()
	acfg := cfg.AuthConfig()

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		lgr.Error("unable to initialize session storage", "error", err)
		os.Exit(1)
	}

	store := authfront.NewStore(storage,
		authfront.WithStoreLogger(lgr.GetLogger("store")),
	)

	navigator := newServerNavigator(lgr.GetLogger("navigator"))

	transport := authfront.NewCredentialTransport(storage, navigator, acfg,
		authfront.WithTransportLogger(lgr.GetLogger("transport")),
		authfront.WithTransportActivitySink(activityLogger(lgr.GetLogger("activity"))),
		authfront.WithTransportSessionInvalidator(store.Logout),
	)

	client := authfront.NewClient(acfg,
		authfront.WithHTTPClient(&http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		}),
		authfront.WithClientLogger(lgr.GetLogger("client")),
		authfront.WithDebug(cfg.Server.Debug),
	)

	guard := authfront.NewRouteGuard(store, acfg).
		WithLogger(lgr.GetLogger("guard"))

	srv := buildServer(cfg)
	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	authfront.RegisterAuthRoutes(srv.Router(),
		authfront.WithAuthControllerClient(client),
		authfront.WithAuthControllerStore(store),
		authfront.WithAuthControllerGuard(guard),
		authfront.WithAuthControllerLogger(lgr.GetLogger("controller")),
		authfront.WithAuthControllerDebug(cfg.Server.Debug),
		authfront.WithAuthControllerActivity(activityLogger(lgr.GetLogger("activity"))),
	)

	lgr.Info("listening", "address", cfg.Server.Address)
	srv.Serve(cfg.Server.Address)

	WaitExitSignal()

	lgr.Info("shutting down")
}

func buildServer(cfg *AppConfig) router.Server[*fiber.App] {
	views, err := fs.Sub(embeddedFS, "views")
	if err != nil {
		panic(err)
	}

	// Disk overrides embedded, so it comes first.
	templatesFS := cfs.NewCompositeFS(os.DirFS("views"), views)

	engine := django.NewFileSystem(http.FS(templatesFS), ".html")

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			StrictRouting:     false,
			PassLocalsToViews: true,
			Views:             engine,
		}))
	})

	assets, err := fs.Sub(embeddedFS, "public")
	if err != nil {
		panic(err)
	}

	assetFS := cfs.NewCompositeFS(os.DirFS("public"), assets)

	srv.Router().Static("/assets", ".", router.Static{
		FS:   assetFS,
		Root: ".",
	})

	return srv
}

func buildStorage(ctx context.Context, cfg *AppConfig) (authfront.Storage, error) {
	if cfg.Session.Driver == "sqlite" {
		db, err := sql.Open(sqliteshim.ShimName, cfg.Session.DSN)
		if err != nil {
			return nil, err
		}

		bunDB := bun.NewDB(db, sqlitedialect.New())

		sessions, err := repository.NewSessions(bunDB, cfg.Session.Key)
		if err != nil {
			return nil, err
		}

		if err := sessions.CreateTables(ctx); err != nil {
			return nil, err
		}

		return sessions, nil
	}

	if err := os.MkdirAll(cfg.Session.Dir, 0o700); err != nil {
		return nil, err
	}

	return authfront.NewFileStorage(cfg.Session.Dir, cfg.Session.Key), nil
}

func activityLogger(logger glog.Logger) authfront.ActivitySinkFunc {
	return func(ctx context.Context, event authfront.ActivityEvent) error {
		logger.Info("activity",
			"event", string(event.EventType),
			"email", event.Email,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
