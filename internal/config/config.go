package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Media     MediaConfig
	Canvas    CanvasConfig
	Generate  GenerateConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration int // hours
}

type RateLimitConfig struct {
	DispatchPerMin  int
	GeneratePerHour int
	ExportPerHour   int
	UploadPerHour   int
}

type MediaConfig struct {
	FFmpegPath  string
	FFprobePath string
	UploadDir   string
}

type CanvasConfig struct {
	Width  int
	Height int
}

type GenerateConfig struct {
	Concurrency int
	TimeoutMin  int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expiration", 24)
	viper.SetDefault("ratelimit.dispatch_per_min", 120)
	viper.SetDefault("ratelimit.generate_per_hour", 10)
	viper.SetDefault("ratelimit.export_per_hour", 20)
	viper.SetDefault("ratelimit.upload_per_hour", 50)
	viper.SetDefault("media.ffmpeg_path", "ffmpeg")
	viper.SetDefault("media.ffprobe_path", "ffprobe")
	viper.SetDefault("media.upload_dir", "./uploads")
	viper.SetDefault("canvas.width", 1280)
	viper.SetDefault("canvas.height", 720)
	viper.SetDefault("generate.concurrency", 2)
	viper.SetDefault("generate.timeout_min", 10)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
			Env:  viper.GetString("server.env"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("jwt.secret"),
			Expiration: viper.GetInt("jwt.expiration"),
		},
		RateLimit: RateLimitConfig{
			DispatchPerMin:  viper.GetInt("ratelimit.dispatch_per_min"),
			GeneratePerHour: viper.GetInt("ratelimit.generate_per_hour"),
			ExportPerHour:   viper.GetInt("ratelimit.export_per_hour"),
			UploadPerHour:   viper.GetInt("ratelimit.upload_per_hour"),
		},
		Media: MediaConfig{
			FFmpegPath:  viper.GetString("media.ffmpeg_path"),
			FFprobePath: viper.GetString("media.ffprobe_path"),
			UploadDir:   viper.GetString("media.upload_dir"),
		},
		Canvas: CanvasConfig{
			Width:  viper.GetInt("canvas.width"),
			Height: viper.GetInt("canvas.height"),
		},
		Generate: GenerateConfig{
			Concurrency: viper.GetInt("generate.concurrency"),
			TimeoutMin:  viper.GetInt("generate.timeout_min"),
		},
	}

	return cfg, nil
}
