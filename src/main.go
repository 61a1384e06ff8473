package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/wheelhouse-trading/wheelhouse/src/eventconsumers"
	"github.com/wheelhouse-trading/wheelhouse/src/eventpubsub"
	"github.com/wheelhouse-trading/wheelhouse/src/eventservices"
	"github.com/wheelhouse-trading/wheelhouse/src/handler"
	"github.com/wheelhouse-trading/wheelhouse/src/session"
	"github.com/wheelhouse-trading/wheelhouse/src/utils"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Fatalf("missing PROJECTS_DIR environment variable")
	}

	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	if err := utils.InitEnvironmentVariables(projectsDir, goEnv); err != nil {
		log.Fatalf("failed to init environment variables: %v", err)
	}

	config, err := utils.LoadDashboardConfig(projectsDir)
	if err != nil {
		log.Fatalf("failed to load dashboard config: %v", err)
	}

	// setup pubsub
	eventpubsub.Init()

	// setup backend client + order tracker + session
	client := eventservices.NewDashboardClient(config.BackendURL, config.RequestTimeout())

	wg := sync.WaitGroup{}
	tracker := eventconsumers.NewOrderMonitoringWorker(&wg, client, config.PollInterval())
	tracker.Start(ctx)

	dashboardSession := session.NewDashboardSession(client, tracker, config)
	if err := dashboardSession.Bootstrap(ctx); err != nil {
		log.Errorf("bootstrap failed, continuing with an empty session: %v", err)
	}

	// setup router
	router := mux.NewRouter()
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "3000"
	}

	handler.SetupHandler(router.PathPrefix("/dashboard").Subrouter(), dashboardSession)

	// start the http server
	srv := &http.Server{
		Handler: router,
		Addr:    fmt.Sprintf(":%s", port),
	}

	go func() {
		log.Infof("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil {
			if err.Error() != "http: Server closed" {
				log.Fatalf("http: failed to listen and serve: %v", err)
			}
		}
	}()

	// Create channel for shutdown signals.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	signal.Notify(stop, syscall.SIGTERM)

	<-stop
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down server %s", err)
	} else {
		log.Println("Server gracefully stopped")
	}

	wg.Wait()
}
