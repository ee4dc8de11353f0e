package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Trivia   Trivia
	Redis    Redis
	Session  Session
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Trivia struct {
	APIURL  string
	Timeout time.Duration
}

// Redis is optional; when Addr is empty the in-memory session store is used.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Session struct {
	TTL time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TRIVIA_API_URL", "https://opentdb.com/api.php")
	viper.SetDefault("TRIVIA_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Trivia.APIURL = viper.GetString("TRIVIA_API_URL")
	config.Trivia.Timeout = time.Duration(viper.GetInt("TRIVIA_TIMEOUT_SECONDS")) * time.Second

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.Session.TTL = time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute

	log.Info().Str("port", config.Server.Port).Str("trivia_api", config.Trivia.APIURL).Msg("Config loaded")
	return &config, nil
}
