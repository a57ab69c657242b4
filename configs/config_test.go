package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
)

func TestLoadConfig(t *testing.T) {
	logger.Init()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "db:\n  dsn: test-dsn\njwt:\n  secret: s3cret\nkafka:\n  brokers:\n    - localhost:9092\n"
	if err := os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	LoadConfig()

	if AppConfig.DB.DSN != "test-dsn" {
		t.Fatalf("dsn = %q, want test-dsn", AppConfig.DB.DSN)
	}
	if AppConfig.JWT.SECRET != "s3cret" {
		t.Fatalf("secret = %q, want s3cret", AppConfig.JWT.SECRET)
	}
	if len(AppConfig.Kafka.Brokers) != 1 || AppConfig.Kafka.Brokers[0] != "localhost:9092" {
		t.Fatalf("brokers = %v", AppConfig.Kafka.Brokers)
	}
}
