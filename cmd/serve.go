package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shuttleboard/config"
	"shuttleboard/web"
)

var (
	servePort   int
	serveURL    string
	serveInput  string
	serveNoOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only timetable dashboard",
	Long: `Start a local HTTP server with the timetable dashboard.

The sheet is fetched once when the server starts. The page offers a search box
and a toggle between morning arrivals and evening departures; neither refetches.
Use the "Try again" button after a failed fetch, or POST /reload, to fetch again.

Prometheus metrics are served on /metrics.`,
	Example: `
  # Start on the configured port (default 8080)
  shuttleboard serve

  # Serve a local copy of the sheet on port 9090
  shuttleboard serve --port 9090 --input ./timetable.xlsx --no-open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadServeConfig(cmd.Flags().Changed("port"), servePort)
		if err != nil {
			return err
		}
		input := serveInput
		if serveURL != "" {
			input = serveURL
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		reader, err := openReader(cfg, input, reg)
		if err != nil {
			return err
		}
		loader := web.NewLoader(reader, cfg.Columns.Time, *componentLogger("loader"))

		handler, err := newServeHandler(loader, cfg, reg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		loader.Start(ctx)

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		server := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		cliLog.Info().Str("url", listenURL).Msg("dashboard listening")
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL); openErr != nil {
				cliLog.Warn().Err(openErr).Msg("failed to open browser")
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the dashboard (overrides server.port)")
	serveCmd.Flags().StringVar(&serveURL, "url", "", "Override the published sheet URL from config")
	serveCmd.Flags().StringVarP(&serveInput, "input", "i", "", "Serve a local .csv/.xlsx copy instead of the published sheet")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

// loadServeConfig applies --port before validation so the flag is held to
// the same range as server.port.
func loadServeConfig(portChanged bool, port int) (*config.Config, error) {
	if portChanged {
		viper.Set(config.KeyServerPort, port)
	}
	return config.LoadAndValidate()
}

// newServeHandler mounts the dashboard next to the metrics endpoint.
func newServeHandler(loader *web.Loader, cfg *config.Config, reg *prometheus.Registry) (http.Handler, error) {
	dashboard, err := web.NewServer(loader, web.ServerConfig{
		Columns:    web.Columns{Contact: cfg.Columns.Contact},
		Logger:     componentLogger("web"),
		Registerer: reg,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", dashboard)
	return mux, nil
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
