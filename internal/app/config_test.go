package app

import "testing"

func setMandatoryEnv(t *testing.T) {
	t.Helper()

	t.Setenv("IMAGE2URL_BOT_TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("IMAGE2URL_BOT_IMGBB_API_KEY", "imgbb-key")
	t.Setenv("IMAGE2URL_BOT_POSTGRES_HOST", "localhost")
	t.Setenv("IMAGE2URL_BOT_POSTGRES_USERNAME", "postgres")
	t.Setenv("IMAGE2URL_BOT_POSTGRES_PASSWORD", "postgres")
	t.Setenv("IMAGE2URL_BOT_POSTGRES_DATABASE", "bot")
}

func TestNewEnvConfigMinimalEnvironment(t *testing.T) {
	setMandatoryEnv(t)

	cfg, err := NewEnvConfig("image2url_bot")
	if err != nil {
		t.Fatalf("NewEnvConfig() error = %v, want nil", err)
	}

	if cfg.Alerter == nil || cfg.Alerter.Enabled() {
		t.Error("alerter must be disabled without ALERTER_* variables")
	}
	if cfg.Redis == nil || cfg.Redis.Enabled() {
		t.Error("redis must be disabled without REDIS_HOST")
	}
	if cfg.KafkaProducer == nil || cfg.KafkaProducer.Enabled() {
		t.Error("kafka producer must be disabled without KAFKA_PRODUCER_BROKERS")
	}
	if cfg.KafkaConsumer == nil || cfg.KafkaConsumer.Enabled() {
		t.Error("kafka consumer must be disabled without KAFKA_CONSUMER_BROKERS")
	}

	if cfg.Bot.HostingBackend != HostingBackendImgBB {
		t.Errorf("default hosting backend = %q, want %q", cfg.Bot.HostingBackend, HostingBackendImgBB)
	}
}

func TestNewEnvConfigOptionalSubsystemsEnabled(t *testing.T) {
	setMandatoryEnv(t)
	t.Setenv("IMAGE2URL_BOT_ALERTER_BOT_TOKEN", "987654:alert-token")
	t.Setenv("IMAGE2URL_BOT_ALERTER_CHAT_ID", "42")
	t.Setenv("IMAGE2URL_BOT_REDIS_HOST", "redis")
	t.Setenv("IMAGE2URL_BOT_KAFKA_PRODUCER_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := NewEnvConfig("image2url_bot")
	if err != nil {
		t.Fatalf("NewEnvConfig() error = %v, want nil", err)
	}

	if !cfg.Alerter.Enabled() {
		t.Error("alerter must be enabled when token and chat id are set")
	}
	if !cfg.Redis.Enabled() {
		t.Error("redis must be enabled when REDIS_HOST is set")
	}
	if !cfg.KafkaProducer.Enabled() {
		t.Error("kafka producer must be enabled when brokers are set")
	}
}
