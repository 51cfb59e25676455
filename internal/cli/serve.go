package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/mnemo/internal/logger"
	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/server"
	"github.com/julianstephens/mnemo/internal/service"
)

type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)." placeholder:"HOST:PORT"`
}

func (cmd *ServeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	policy := scanPolicy(ctx.Config)
	events := repo.NewEventRepo(ctx.Store, policy)
	diary := repo.NewDiaryRepo(ctx.Store, policy)
	svc := service.New(ctx.Store, events, newCompleter(ctx.Config))

	addr := ctx.Config.ListenAddr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(ctx.Config, events, diary, svc).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving", "addr", addr, "backend", ctx.Config.Storage.Backend, "store", ctx.Store.Location())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
