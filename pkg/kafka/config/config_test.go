package kafka_config

import (
	"testing"
)

func TestLoad_DisabledByDefault(t *testing.T) {
	t.Setenv(EnvKafkaEnabled, "")

	cfg := Load()
	if cfg.Enabled {
		t.Error("expected Kafka to be disabled unless KAFKA_ENABLED is set")
	}
}

func TestLoad_EnabledFromEnv(t *testing.T) {
	t.Setenv(EnvKafkaEnabled, "true")
	t.Setenv(EnvKafkaBrokers, "broker-1:9092, broker-2:9092")

	cfg := Load()
	if !cfg.Enabled {
		t.Error("expected Kafka to be enabled")
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "broker-1:9092" || cfg.Brokers[1] != "broker-2:9092" {
		t.Errorf("brokers = %v", cfg.Brokers)
	}
}
