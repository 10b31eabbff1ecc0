package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/sprintindex/notify-api/config"
	"github.com/sprintindex/notify-api/internal/event"
	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/internal/push"
	repofs "github.com/sprintindex/notify-api/internal/repository/firestore"
	notificationService "github.com/sprintindex/notify-api/internal/service/notification"
	postService "github.com/sprintindex/notify-api/internal/service/post"
	"github.com/sprintindex/notify-api/internal/worker"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	workerID := fmt.Sprintf("notify-worker-%s-%d", uuid.NewString()[:8], os.Getpid())
	log := logger.NewLogger(nil).WithFields(map[string]interface{}{"worker_id": workerID})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		log.Fatal(err, "failed to initialize firebase app")
	}
	fsClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatal(err, "failed to initialize firestore client")
	}
	defer fsClient.Close()
	fcmClient, err := app.Messaging(ctx)
	if err != nil {
		log.Fatal(err, "failed to initialize fcm client")
	}
	log.Info("firebase connected", "project_id", cfg.Firebase.ProjectID)

	registry := prometheus.NewRegistry()
	m := metrics.New("notify")
	m.Register(registry)

	notificationRepo := repofs.NewNotificationRepository(fsClient, log)
	topicRepo := repofs.NewTopicNotificationRepository(fsClient, log)
	postRepo := repofs.NewPostRepository(fsClient, log)

	limiter := rate.NewLimiter(rate.Limit(cfg.Push.RateLimit), cfg.Push.RateLimit)
	sender := push.NewSender(fcmClient)

	dispatcher := notificationService.NewDispatcher(notificationRepo, topicRepo, sender, limiter, log, m)
	posts := postService.NewService(postRepo, log, m)

	retrySweeper := worker.NewRetrySweeper(notificationRepo, sender, limiter, worker.RetrySweeperConfig{
		BatchSize:  cfg.Retry.BatchSize,
		Interval:   cfg.Retry.Interval,
		MaxRetries: cfg.Retry.MaxRetries,
	}, log, m)
	expirySweeper := worker.NewExpirySweeper(posts, cfg.Expiry.Interval, log, m)

	go retrySweeper.Start(ctx)
	go expirySweeper.Start(ctx)
	go serveHealth(ctx, cfg.Worker.HealthPort, registry, log)

	listener := event.NewListener(log)
	go watch(ctx, listener, "notifications", fsClient.Collection("notifications").Query,
		func(ctx context.Context, doc *firestore.DocumentSnapshot) error {
			var n model.Notification
			if err := doc.DataTo(&n); err != nil {
				return fmt.Errorf("failed to decode notification %s: %w", doc.Ref.ID, err)
			}
			n.ID = doc.Ref.ID
			return dispatcher.HandleCreated(ctx, &n)
		}, nil, log)

	go watch(ctx, listener, "topicNotifications", fsClient.Collection("topicNotifications").Query,
		func(ctx context.Context, doc *firestore.DocumentSnapshot) error {
			var n model.TopicNotification
			if err := doc.DataTo(&n); err != nil {
				return fmt.Errorf("failed to decode topic notification %s: %w", doc.Ref.ID, err)
			}
			n.ID = doc.Ref.ID
			return dispatcher.HandleTopicCreated(ctx, &n)
		}, nil, log)

	go watch(ctx, listener, "comments", fsClient.CollectionGroup("comments").Query,
		func(ctx context.Context, doc *firestore.DocumentSnapshot) error {
			return posts.HandleCommentCreated(ctx, event.ParentDocumentID(doc))
		},
		func(ctx context.Context, doc *firestore.DocumentSnapshot) error {
			return posts.HandleCommentDeleted(ctx, event.ParentDocumentID(doc))
		}, log)

	log.Info("worker started")
	<-ctx.Done()
	log.Info("shutting down")

	// Give in-flight handlers a moment before the firestore client closes.
	time.Sleep(100 * time.Millisecond)
}

func watch(ctx context.Context, l *event.Listener, name string, query firestore.Query, onAdded, onRemoved event.DocumentHandler, log *logger.Logger) {
	if err := l.Watch(ctx, name, query, onAdded, onRemoved); err != nil {
		log.Error(err, "listener terminated", "stream", name)
	}
}

func serveHealth(ctx context.Context, port int, registry *prometheus.Registry, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(err, "health server failed")
	}
}
