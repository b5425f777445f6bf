package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	News     NewsConfig     `mapstructure:"news"`
	Weather  WeatherConfig  `mapstructure:"weather"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type NewsConfig struct {
	FeedURL       string `mapstructure:"feed_url"`
	DefaultHeight string `mapstructure:"default_height"`
}

// WeatherConfig holds the seed values for the widget settings store. They are
// written to the database on first activation and mutated through the admin
// surface afterwards.
type WeatherConfig struct {
	BaseURL       string  `mapstructure:"base_url"`
	APIKey        string  `mapstructure:"api_key"`
	Latitude      float64 `mapstructure:"latitude"`
	Longitude     float64 `mapstructure:"longitude"`
	LocationName  string  `mapstructure:"location_name"`
	ForecastDays  int     `mapstructure:"forecast_days"`
	CacheDuration int     `mapstructure:"cache_duration"`
}

func Load(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/site-widgets")
	}

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "./site-widgets.db")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "")
	viper.SetDefault("news.feed_url", "https://baltsch.de/news/relativ_neukalen-news-feed.html")
	viper.SetDefault("news.default_height", "1000px")
	viper.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5/forecast")
	viper.SetDefault("weather.api_key", "")
	viper.SetDefault("weather.latitude", 53.822)
	viper.SetDefault("weather.longitude", 12.788)
	viper.SetDefault("weather.location_name", "Neukalen")
	viper.SetDefault("weather.forecast_days", 3)
	viper.SetDefault("weather.cache_duration", 30)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
