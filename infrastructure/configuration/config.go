package configuration

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"linkedin-autoposter/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	LinkedIn    LinkedIn    `json:"linkedin"`
	Mail        Mail        `json:"mail"`
	Scheduler   Scheduler   `json:"scheduler"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	Share       Share       `json:"share"`
}

type App struct {
	Port           int      `json:"port"`
	SecretKey      string   `json:"secretKey"`
	TLSEnabled     bool     `json:"tlsEnabled"`
	TLSCertFile    string   `json:"tlsCertFile"`
	TLSKeyFile     string   `json:"tlsKeyFile"`
	BaseURL        string   `json:"baseURL"`
	SiteName       string   `json:"siteName"`
	SiteURL        string   `json:"siteURL"`
	SiteLogoURL    string   `json:"siteLogoURL"`
	Timezone       string   `json:"timezone"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

type Database struct {
	// Vendor selects the settings store: postgres, mssql, redis or memory.
	Vendor string `json:"vendor"`
	Psql   Db     `json:"psql"`
	MySql  Db     `json:"mysql"`
	Mongo  Db     `json:"mongo"`
	Mssql  Db     `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

type Mail struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	From       string `json:"from"`
	AdminEmail string `json:"adminEmail"`
}

type Scheduler struct {
	ExpiryCheckSpec string `json:"expiryCheckSpec"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	TopicID   string `json:"topicID"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	Queue     string `json:"queue"`
}

type Share struct {
	// PostTypes is used until the operator saves settings.
	PostTypes []string `json:"postTypes"`
	// MediaURLs seeds the media library when no Mongo store is configured.
	// Keys are media ids; viper lowercases them.
	MediaURLs map[string]string `json:"mediaURLs"`
}

// Load reads config[-ENV].json and applies environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	name := getConfig()
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", name, err)
		}
		logger.GetLogger().WithField("config", name).Warn("Config file not found")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	initDatabase(&c)
	initApp(&c)
	initLinkedIn(&c)
	initMail(&c)
	initScheduler(&c)
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	return &c, nil
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(c *Config) {
	c.Database.Vendor = strings.ToLower(getConfigValue(c.Database.Vendor, "STORE_VENDOR", "postgres"))

	c.Database.Psql.Name = getConfigValue(c.Database.Psql.Name, "DB_NAME", "")
	c.Database.Psql.Host = getConfigValue(c.Database.Psql.Host, "DB_HOST", "localhost")
	c.Database.Psql.Port = getConfigValue(c.Database.Psql.Port, "DB_PORT", "5432")
	c.Database.Psql.User = getConfigValue(c.Database.Psql.User, "DB_USER", "")
	c.Database.Psql.Password = getConfigValue(c.Database.Psql.Password, "DB_PASSWORD", "")

	c.Database.Mssql.Name = getConfigValue(c.Database.Mssql.Name, "MSSQL_DB_NAME", "")
	c.Database.Mssql.Host = getConfigValue(c.Database.Mssql.Host, "MSSQL_HOST", "localhost")
	c.Database.Mssql.Port = getConfigValue(c.Database.Mssql.Port, "MSSQL_PORT", "1433")
	c.Database.Mssql.User = getConfigValue(c.Database.Mssql.User, "MSSQL_USER", "sa")
	c.Database.Mssql.Password = getConfigValue(c.Database.Mssql.Password, "MSSQL_PASSWORD", "")

	c.Database.MySql.Host = getConfigValue(c.Database.MySql.Host, "MYSQL_HOST", "")
	c.Database.Mongo.Host = getConfigValue(c.Database.Mongo.Host, "MONGO_HOST", "")
}

func initApp(c *Config) {
	// SECRET_KEY from environment overrides the config file
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.App.SecretKey = v
	}
	// Port resolution order: APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if c.App.Port == 0 {
		c.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			c.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			c.App.TLSEnabled = false
		}
	}
	c.App.TLSCertFile = getConfigValue(c.App.TLSCertFile, "TLS_CERT_FILE", "")
	c.App.TLSKeyFile = getConfigValue(c.App.TLSKeyFile, "TLS_KEY_FILE", "")

	scheme := "http"
	if c.App.TLSEnabled {
		scheme = "https"
	}
	c.App.BaseURL = strings.TrimRight(getConfigValue(c.App.BaseURL, "APP_BASE_URL", fmt.Sprintf("%s://localhost:%d", scheme, c.App.Port)), "/")
	c.App.SiteName = getConfigValue(c.App.SiteName, "SITE_NAME", "My Site")
	c.App.SiteURL = getConfigValue(c.App.SiteURL, "SITE_URL", c.App.BaseURL)
	c.App.Timezone = getConfigValue(c.App.Timezone, "TZ", "UTC")
	if len(c.App.AllowedOrigins) == 0 {
		c.App.AllowedOrigins = []string{"http://localhost:4200", "https://localhost:4200"}
	}
	if c.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initMail(c *Config) {
	c.Mail.Host = getConfigValue(c.Mail.Host, "SMTP_HOST", "")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Mail.Port = p
		}
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	c.Mail.Username = getConfigValue(c.Mail.Username, "SMTP_USERNAME", "")
	c.Mail.Password = getConfigValue(c.Mail.Password, "SMTP_PASSWORD", "")
	c.Mail.From = getConfigValue(c.Mail.From, "SMTP_FROM", c.Mail.Username)
	c.Mail.AdminEmail = getConfigValue(c.Mail.AdminEmail, "ADMIN_EMAIL", "")
}

func initScheduler(c *Config) {
	c.Scheduler.ExpiryCheckSpec = getConfigValue(c.Scheduler.ExpiryCheckSpec, "EXPIRY_CHECK_SPEC", "@daily")
}

// getConfigValue prefers the environment, then a non-placeholder config value, then the default.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
