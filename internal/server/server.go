// Package server boots the application: config, logging, stores, queue
// workers, event listeners, and the HTTP (plus optional gRPC) listeners.
package server

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	googlegrpc "google.golang.org/grpc"

	"github.com/shashiranjanraj/bazaar/app/graphql"
	"github.com/shashiranjanraj/bazaar/app/jobs"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/routes"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/config"
	_ "github.com/shashiranjanraj/bazaar/database/migrations"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/event"
	pkggrpc "github.com/shashiranjanraj/bazaar/pkg/grpc"
	gql "github.com/shashiranjanraj/bazaar/pkg/graphql"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/migration"
	"github.com/shashiranjanraj/bazaar/pkg/orm"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
	"github.com/shashiranjanraj/bazaar/pkg/reqid"
	"github.com/shashiranjanraj/bazaar/pkg/router"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
	"github.com/shashiranjanraj/bazaar/pkg/workerpool"
	"github.com/shashiranjanraj/bazaar/pkg/ws"
)

// OrderFeed is the live order websocket hub, broadcast-only.
var OrderFeed = ws.NewHub()

// cacheBridge adapts pkg/cache to the orm.Cacher hook without a direct
// import between the two packages.
type cacheBridge struct{}

func (cacheBridge) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (cacheBridge) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
func (cacheBridge) Forget(key string) error { return cache.Forget(key) }

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	logger.AttachMongoSink()

	if err := database.Connect(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		// The app works without Redis; the category cache just stays cold.
		logger.Warn("cache unavailable", "error", err)
	} else {
		orm.CacheStore = cacheBridge{}
	}

	storage.Connect()

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenerPool := workerpool.New(8)
	defer listenerPool.Shutdown()
	event.Default.UsePool(listenerPool)

	bootQueue(ctx)
	registerListeners()
	go OrderFeed.Run()

	r := buildRouter()

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
		}
	}()

	grpcSrv := startGRPC()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	pkggrpc.Stop(grpcSrv)
	return httpSrv.Shutdown(shutdownCtx)
}

func buildRouter() *router.Router {
	r := router.New()

	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	routes.RegisterAPI(r)

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})
	r.HandleFunc("/ws/orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, OrderFeed)
	})
	r.HandleFunc("/storage/*", serveStoredFile)

	if schema, err := graphql.NewSchema(services.NewCatalogService()); err != nil {
		logger.Warn("graphql disabled", "error", err)
	} else {
		r.Post("/graphql", "graphql", gql.Handler(schema))
	}

	return r
}

// serveStoredFile streams an uploaded file back from the storage disk.
// This is what the local disk's public URLs point at.
func serveStoredFile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/storage/")
	if path == "" || strings.Contains(path, "..") {
		http.NotFound(w, r)
		return
	}

	rc, err := storage.GetStream(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, rc); err != nil {
		logger.WithCtx(r.Context()).Warn("storage: stream aborted", "path", path, "error", err)
	}
}

func bootQueue(ctx context.Context) {
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	queue.UseDB(database.DB)
	jobs.RegisterJobs()
	queue.StartWorkers(ctx, 4)
}

// registerListeners wires the order.created event into the websocket
// feed and the confirmation mail job.
func registerListeners() {
	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}

		if msg, err := json.Marshal(order); err == nil {
			select {
			case OrderFeed.Broadcast <- msg:
			default:
			}
		}

		if err := queue.Dispatch(&jobs.OrderConfirmationJob{OrderID: order.ID}); err != nil {
			logger.Error("dispatch order confirmation", "order_id", order.ID, "error", err)
		}
	})
}

func startGRPC() *googlegrpc.Server {
	port := config.GRPCPort()
	if port == "" {
		return nil
	}

	srv, _, err := pkggrpc.Start(port)
	if err != nil {
		logger.Error("grpc server failed to start", "error", err)
		return nil
	}
	return srv
}
