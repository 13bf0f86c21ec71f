package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Mail    MailConfig
	Store   StoreConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// StoreConfig bounds calls against the persistent store.
type StoreConfig struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 24 * time.Hour
	}

	storeTimeout, err := time.ParseDuration(viper.GetString("STORE_TIMEOUT"))
	if err != nil {
		storeTimeout = 5 * time.Second
	}

	cookieName := viper.GetString("SESSION_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "medibook_session"
	}

	sender := viper.GetString("MAIL_SENDER")
	if sender == "" {
		sender = viper.GetString("MAIL_USERNAME")
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			CookieName: cookieName,
			TTL:        sessionTTL,
		},
		Mail: MailConfig{
			Host:     viper.GetString("MAIL_SERVER"),
			Port:     viper.GetString("MAIL_PORT"),
			Username: viper.GetString("MAIL_USERNAME"),
			Password: viper.GetString("MAIL_PASSWORD"),
			Sender:   sender,
		},
		Store: StoreConfig{
			Timeout: storeTimeout,
		},
	}

	return config, nil
}
