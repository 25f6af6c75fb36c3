package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/makersair/fhbridge/api"
	"github.com/makersair/fhbridge/config"
)

// Run starts the webhook HTTP server and blocks until the context is
// canceled or the server fails. HTTPS is used when the configured
// certificate pair exists, mirroring how FareHarbor requires TLS endpoints
// in production but local runs stay on plain HTTP.
func Run(ctx context.Context, cfg *config.Config, handler *api.WebhookHandler) error {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())

	webhooks := router.Group("/integrations/fareharbor/webhooks")
	handler.Register(webhooks)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.HTTP.TLSEnabled() {
			log.Printf("serving HTTPS on %s", cfg.HTTP.Address)
			errCh <- srv.ListenAndServeTLS(cfg.HTTP.TLSCert, cfg.HTTP.TLSKey)
			return
		}
		log.Printf("serving HTTP on %s", cfg.HTTP.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
