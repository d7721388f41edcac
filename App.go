package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"io"
	"log"
	"net/http"
	"time"
)

const ExitCodeMainError = 1

const DefaultListenAddr = ":8080"

const shutdownTimeout = time.Second * 5

type AppConfig struct {
	DatabaseFilePath string
	ListenAddr       string
}

// RunApp serves the API until ctx is cancelled
func RunApp(ctx context.Context, config AppConfig) error {
	gin.SetMode(gin.ReleaseMode)

	serviceContainer, err := BuildServiceContainer(config.DatabaseFilePath)
	if err != nil {
		return err
	}

	serviceContainer.WebhookDispatcher.Start()
	defer serviceContainer.Database.Close()
	defer serviceContainer.WebhookDispatcher.Close()

	listenAddr := config.ListenAddr
	if listenAddr == "" {
		listenAddr = DefaultListenAddr
	}

	server := &http.Server{
		Addr:    listenAddr,
		Handler: serviceContainer.Router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("[app] listen on %s, database %s", listenAddr, config.DatabaseFilePath)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serverErr:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = server.Shutdown(shutdownCtx)
	}

	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}

	return 0
}
