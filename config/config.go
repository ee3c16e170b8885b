package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		AccessSecret    string        `mapstructure:"access_secret"`
		RefreshSecret   string        `mapstructure:"refresh_secret"`
		AccessTokenTTL  time.Duration `mapstructure:"access_ttl"`
		RefreshTokenTTL time.Duration `mapstructure:"refresh_ttl"`
	} `mapstructure:"jwt"`
	Agora struct {
		AppID          string `mapstructure:"app_id"`
		AppCertificate string `mapstructure:"app_certificate"`
	} `mapstructure:"agora"`
	Google struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		RedirectURL  string `mapstructure:"redirect_url"`
	} `mapstructure:"google"`
	Cookie struct {
		Secure   bool   `mapstructure:"secure"`
		SameSite string `mapstructure:"same_site"`
	} `mapstructure:"cookie"`
	CORS struct {
		AllowedOrigin string `mapstructure:"allowed_origin"`
	} `mapstructure:"cors"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	// Defaults so the server can boot in development without a fully
	// populated config file.
	viper.SetDefault("server.port", "3001")
	viper.SetDefault("jwt.access_ttl", 15*time.Minute)
	viper.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)
	viper.SetDefault("cookie.same_site", "lax")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
