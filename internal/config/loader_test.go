package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pable/go-rugby-metrics/internal/config"
)

var configEnvVars = []string{
	"RUGBYMETRICS_CONFIG",
	"RUGBYMETRICS_DB_PATH",
	"RUGBYMETRICS_BACKEND_URL",
	"RUGBYMETRICS_BACKEND_TIMEOUT_SEC",
	"RUGBYMETRICS_OUR_TEAMS",
	"RUGBYMETRICS_EXTRA_TIME",
	"RUGBYMETRICS_LOG_LEVEL",
	"RUGBYMETRICS_ANALYZE_MODEL",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rugbymetrics.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BackendURL, convey.ShouldEqual, "http://localhost:5001")
				convey.So(cfg.BackendTimeoutSec, convey.ShouldEqual, 30)
				convey.So(cfg.OurTeams, convey.ShouldBeEmpty)
				convey.So(cfg.ExtraTime, convey.ShouldBeFalse)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(filepath.Base(cfg.DBPath), convey.ShouldEqual, "matches.db")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
db_path: /tmp/rugby.db
backend_url: http://backend:9000
backend_timeout_sec: 5
our_teams:
  - Foxes
  - Foxes A
extra_time: true
`)
			cfg, err := config.Load(path)

			convey.Convey("Then file values replace defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/rugby.db")
				convey.So(cfg.BackendURL, convey.ShouldEqual, "http://backend:9000")
				convey.So(cfg.BackendTimeoutSec, convey.ShouldEqual, 5)
				convey.So(cfg.OurTeams, convey.ShouldResemble, []string{"Foxes", "Foxes A"})
				convey.So(cfg.ExtraTime, convey.ShouldBeTrue)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			path := writeConfigFile(t, "backend_url: http://backend:9000\nbackend_timeout_sec: 5\n")
			_ = os.Setenv("RUGBYMETRICS_CONFIG", path)
			_ = os.Setenv("RUGBYMETRICS_BACKEND_TIMEOUT_SEC", "12")
			_ = os.Setenv("RUGBYMETRICS_OUR_TEAMS", "Foxes, Foxes A ,")
			_ = os.Setenv("RUGBYMETRICS_LOG_LEVEL", "debug")

			cfg, err := config.Load("")

			convey.Convey("Then environment variables override the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BackendURL, convey.ShouldEqual, "http://backend:9000")
				convey.So(cfg.BackendTimeoutSec, convey.ShouldEqual, 12)
				convey.So(cfg.OurTeams, convey.ShouldResemble, []string{"Foxes", "Foxes A"})
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the file does not exist", func() {
			cfg, err := config.Load("/non/existent/file.yaml")

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file is not valid YAML", func() {
			path := writeConfigFile(t, `invalid: yaml: content: [`)
			cfg, err := config.Load(path)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("RUGBYMETRICS_BACKEND_TIMEOUT_SEC", "0")
			cfg, err := config.Load("")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "backend_timeout_sec")
			})
		})

		convey.Convey("When the log level is unknown", func() {
			_ = os.Setenv("RUGBYMETRICS_LOG_LEVEL", "loud")
			_, err := config.Load("")

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
