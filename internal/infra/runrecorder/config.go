package runrecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string
}

func LoadConfig() *Config {
	return &Config{
		Disabled: os.Getenv("RECONCILE_RESULTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "reconcile_results"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
