package ratelimit

import (
	"testing"
	"time"
)

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/poem", Method: "POST", Limit: 5, Window: time.Minute},
		{Path: "/api/health", Method: "GET", Limit: 0},
	}

	if cfg := MatchEndpoint("/api/poem", "POST", configs); cfg == nil || cfg.Limit != 5 {
		t.Errorf("Expected poem config with limit 5, got %+v", cfg)
	}
	if cfg := MatchEndpoint("/api/poem", "GET", configs); cfg != nil {
		t.Errorf("Expected no match for wrong method, got %+v", cfg)
	}
	if cfg := MatchEndpoint("/poem", "GET", configs); cfg != nil {
		t.Errorf("Expected no match for unconfigured path, got %+v", cfg)
	}
	if cfg := MatchEndpoint("/api/health", "GET", configs); cfg == nil || cfg.Limit != 0 {
		t.Errorf("Expected unlimited health config, got %+v", cfg)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	if !cfg.Enabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.DefaultWindow != time.Minute {
		t.Errorf("Expected default window of 1m, got %v", cfg.DefaultWindow)
	}

	poemCfg := MatchEndpoint("/api/poem", "POST", cfg.EndpointConfigs)
	if poemCfg == nil {
		t.Fatal("Expected a poem endpoint config")
	}
	if poemCfg.Limit != 5 {
		t.Errorf("Expected poem limit 5, got %d", poemCfg.Limit)
	}
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	if cfg.Enabled {
		t.Error("Expected rate limiting disabled")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_POEM_LIMIT", "2")
	t.Setenv("RATE_LIMIT_POEM_WINDOW", "30s")

	cfg := LoadConfig()
	poemCfg := MatchEndpoint("/api/poem", "POST", cfg.EndpointConfigs)
	if poemCfg == nil {
		t.Fatal("Expected a poem endpoint config")
	}
	if poemCfg.Limit != 2 {
		t.Errorf("Expected overridden limit 2, got %d", poemCfg.Limit)
	}
	if poemCfg.Window != 30*time.Second {
		t.Errorf("Expected overridden window 30s, got %v", poemCfg.Window)
	}
}
