package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/config"
	"github.com/pydata-academy/academy/internal/db"
	"github.com/pydata-academy/academy/internal/server"
	"github.com/pydata-academy/academy/internal/session"
	"github.com/pydata-academy/academy/internal/shell"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the course shell web server",
	Long:  `Starts the academy web shell: the catalog and lesson views, their live state channel, and the JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		courses, err := loadCatalog()
		if err != nil {
			return err
		}

		// Session state lives only as long as the process.
		database, err := db.OpenMemory()
		if err != nil {
			return fmt.Errorf("opening session database: %w", err)
		}
		defer database.Close()

		sessionStore := session.NewStore(database)
		sessions := session.NewManager(sessionStore, cfg.Session.CookieName)

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowedOrigins: cfg.AllowedOrigins,
			AllowAll:       cfg.AllowAllOrigins,
			RequestTimeout: cfg.RequestTimeout,
		})

		if err := registerAllRoutes(srv, cfg, courses, sessions); err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Session.IdleTimeout > 0 {
			go sessionStore.RunPruner(ctx, cfg.Session.PruneInterval, cfg.Session.IdleTimeout, log.Printf)
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "academy server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  URL: %s\n", cfg.BaseURL())
		fmt.Fprintf(os.Stderr, "  Courses: %d\n", courses.Len())
		if verbose {
			fmt.Fprintf(os.Stderr, "  Session cookie: %s (idle timeout %s)\n", cfg.Session.CookieName, cfg.Session.IdleTimeout)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires up the JSON API and the shell views.
func registerAllRoutes(srv *server.Server, cfg *config.Config, courses *catalog.Catalog, sessions *session.Manager) error {
	r := srv.Router()

	// Course catalog API
	catalog.RegisterRoutes(r, courses)

	// Session UI state API
	session.RegisterRoutes(r, sessions)

	// Shell pages, static assets and live channel
	renderer, err := shell.NewRenderer()
	if err != nil {
		return fmt.Errorf("loading shell templates: %w", err)
	}
	sh := shell.New(courses, sessions, renderer, cfg.PublicURL)
	sh.TrustOrigins(cfg.AllowedOrigins)
	sh.RegisterRoutes(r)

	return nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
