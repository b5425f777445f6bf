package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"site-widgets/config"
	"site-widgets/internal/api"
	"site-widgets/internal/cache"
	"site-widgets/internal/settings"
	"site-widgets/internal/storage"
	"site-widgets/internal/weather"
	"site-widgets/internal/widget"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "site-widgets",
		Short: "Embeddable site widgets",
		Long:  "Serves the weather and news widgets plus their admin settings surface",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(clearCacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// components wires the stores, gateway and widgets from loaded config.
type components struct {
	cfg      *config.Config
	settings *settings.Store
	gateway  *weather.Gateway
	weather  *widget.WeatherWidget
	news     *widget.NewsWidget
	close    func()
}

func buildComponents() (*components, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	settingsStore, err := settings.Open(db, settings.Settings{
		APIKey:        cfg.Weather.APIKey,
		Latitude:      cfg.Weather.Latitude,
		Longitude:     cfg.Weather.Longitude,
		LocationName:  cfg.Weather.LocationName,
		ForecastDays:  cfg.Weather.ForecastDays,
		CacheDuration: cfg.Weather.CacheDuration,
	})
	if err != nil {
		storage.Close(db)
		return nil, err
	}

	cacheStore, err := cache.Open(db)
	if err != nil {
		storage.Close(db)
		return nil, err
	}

	gateway := weather.NewGateway(settingsStore, cacheStore, weather.NewClient(cfg.Weather.BaseURL))
	weatherWidget := widget.NewWeatherWidget(settingsStore, gateway)
	newsWidget := widget.NewNewsWidget(cfg.News.FeedURL, cfg.News.DefaultHeight)

	return &components{
		cfg:      cfg,
		settings: settingsStore,
		gateway:  gateway,
		weather:  weatherWidget,
		news:     newsWidget,
		close: func() {
			if err := storage.Close(db); err != nil {
				log.Printf("failed to close database: %v", err)
			}
		},
	}, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the widget server",
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := buildComponents()
			if err != nil {
				return err
			}
			defer comps.close()

			server := api.NewServer(api.ServerConfig{
				Port:          comps.cfg.Server.Port,
				Settings:      comps.settings,
				Gateway:       comps.gateway,
				WeatherWidget: comps.weather,
				NewsWidget:    comps.news,
				AdminUser:     comps.cfg.Admin.Username,
				AdminPassword: comps.cfg.Admin.Password,
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				if err := server.Start(); err != nil {
					log.Printf("server error: %v", err)
				}
			}()

			log.Println("Site Widgets started. Press Ctrl+C to stop.")
			<-sigChan
			log.Println("Shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Stop(ctx)
		},
	}
}

func renderCmd() *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the weather widget once to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := buildComponents()
			if err != nil {
				return err
			}
			defer comps.close()

			markup := comps.weather.Render(cmd.Context(), city)
			fmt.Println(string(markup))
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "location label override")
	return cmd
}

func clearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Delete the cached forecast data",
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := buildComponents()
			if err != nil {
				return err
			}
			defer comps.close()

			if err := comps.gateway.ClearCache(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Println("Cache cleared.")
			return nil
		},
	}
}
