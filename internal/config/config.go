// Package config loads service configuration from defaults, the environment
// and command line flags.
package config

import (
	"strings"

	"github.com/appbridge/migration-backend/autoupdate"
	"github.com/appbridge/migration-backend/database"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys
const (
	KeyArangoURL              = "arango_url"
	KeyArangoUser             = "arango_user"
	KeyArangoPass             = "arango_pass"
	KeyArangoDatabase         = "arango_database"
	KeyKafkaBrokers           = "kafka_brokers"
	KeyKafkaAPIKey            = "kafka_api_key"
	KeyKafkaAPISecret         = "kafka_api_secret"
	KeyKafkaTopic             = "kafka_topic"
	KeyKafkaGroupID           = "kafka_group_id"
	KeyPort                   = "port"
	KeyCatalogFile            = "catalog_file"
	KeyMaxConsecutiveFailures = "autoupdate_max_consecutive_failures"
)

// Kafka holds the event consumer settings
type Kafka struct {
	Brokers   []string
	APIKey    string
	APISecret string
	Topic     string
	GroupID   string
}

// Config is the resolved service configuration
type Config struct {
	Database               database.Options
	Kafka                  Kafka
	Port                   string
	CatalogFile            string
	MaxConsecutiveFailures int
}

// New returns a viper instance with defaults set and environment lookup
// enabled. ARANGO_URL, KAFKA_BROKERS and friends override the defaults.
func New() *viper.Viper {
	v := viper.New()

	db := database.DefaultOptions()
	v.SetDefault(KeyArangoURL, db.URL)
	v.SetDefault(KeyArangoUser, db.User)
	v.SetDefault(KeyArangoPass, db.Password)
	v.SetDefault(KeyArangoDatabase, db.Name)

	v.SetDefault(KeyKafkaBrokers, "localhost:9092")
	v.SetDefault(KeyKafkaAPIKey, "")
	v.SetDefault(KeyKafkaAPISecret, "")
	v.SetDefault(KeyKafkaTopic, "packaging-job-events")
	v.SetDefault(KeyKafkaGroupID, "appbridge-autoupdate-worker")

	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyCatalogFile, "")
	v.SetDefault(KeyMaxConsecutiveFailures, autoupdate.DefaultMaxConsecutiveFailures)

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds command line flags to their keys. Flag names use dashes,
// e.g. --catalog-file for catalog_file.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return bindErr
}

// Load resolves the configuration from v
func Load(v *viper.Viper) Config {
	return Config{
		Database: database.Options{
			URL:      v.GetString(KeyArangoURL),
			User:     v.GetString(KeyArangoUser),
			Password: v.GetString(KeyArangoPass),
			Name:     v.GetString(KeyArangoDatabase),
		},
		Kafka: Kafka{
			Brokers:   splitList(v.GetString(KeyKafkaBrokers)),
			APIKey:    v.GetString(KeyKafkaAPIKey),
			APISecret: v.GetString(KeyKafkaAPISecret),
			Topic:     v.GetString(KeyKafkaTopic),
			GroupID:   v.GetString(KeyKafkaGroupID),
		},
		Port:                   v.GetString(KeyPort),
		CatalogFile:            v.GetString(KeyCatalogFile),
		MaxConsecutiveFailures: v.GetInt(KeyMaxConsecutiveFailures),
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
