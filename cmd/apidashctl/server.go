package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/apidashio/apidash/pkg/audit"
	"github.com/apidashio/apidash/pkg/config"
	"github.com/apidashio/apidash/pkg/db"
	"github.com/apidashio/apidash/pkg/server"
	"github.com/apidashio/apidash/pkg/server/endpoints"
	"github.com/apidashio/apidash/pkg/server/middleware"
	gormstore "github.com/apidashio/apidash/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the apidash application server",
	Long: `Run the apidash application server

The server requires the environment variables APIDASH_TOKEN_SIGNING_KEY and
DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		signingKey, ok := os.LookupEnv("APIDASH_TOKEN_SIGNING_KEY")
		if !ok || signingKey == "" {
			fmt.Fprintln(os.Stderr, "APIDASH_TOKEN_SIGNING_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		conn, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		authn := middleware.NewJWTAuthenticator([]byte(signingKey))

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(authn, conn, host, port)
		s.Config = cfg
		s.Auditor = newAuditor(cfg)
		s.EndpointsStore = gormstore.NewEndpointsStore(conn)
		s.KeysStore = gormstore.NewKeysStore(conn)
		s.CampaignsStore = gormstore.NewCampaignsStore(conn)
		s.HealthStore = gormstore.NewHealthStore(conn)

		endpoints.RegisterAll(s)

		// Reload config when the file changes. Watch blocks until stop
		// closes, so it runs alongside the server.
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			if err := config.Watch(stop, func(err error) {
				log.Println("Config reload failed:", err)
			}); err != nil {
				log.Println("Config watch disabled:", err)
			}
		}()

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func newAuditor(cfg *config.DashConfig) audit.Auditor {
	if !cfg.AuditEnabled {
		return audit.NopAuditor{}
	}

	store, err := audit.NewStore()
	if err != nil {
		log.Println("Audit database unavailable:", err)
	}
	return audit.NewRecorder(audit.NewLogger(), store)
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "Server bind address")
	serverCmd.Flags().StringP("port", "p", defaultPort(), "Server port")
	serverCmd.Flags().Bool("no-migrate", false, "Skip database migrations on startup")
}
