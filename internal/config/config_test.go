package config

import (
	"testing"
	"time"
)

const testSecret = "segredo-de-teste-com-32-caracteres!"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, esperado 8080", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, esperado data", cfg.DataDir)
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("UploadDir = %q, esperado uploads", cfg.UploadDir)
	}
	if cfg.JWTAccessTTL != 24*time.Hour {
		t.Errorf("JWTAccessTTL = %v, esperado 24h", cfg.JWTAccessTTL)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, esperado admin", cfg.AdminUsername)
	}
	if len(cfg.AllowOrigins) != 0 {
		t.Errorf("AllowOrigins = %v, esperado vazio", cfg.AllowOrigins)
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "curto")

	if _, err := Load(); err == nil {
		t.Fatal("segredo curto deveria ser rejeitado")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "3000")
	t.Setenv("DATA_DIR", "/var/lib/tutelar/data")
	t.Setenv("JWT_ACCESS_TTL", "1h")
	t.Setenv("ALLOW_ORIGINS", "http://localhost:5173, https://conselho.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, esperado 3000", cfg.Port)
	}
	if cfg.DataDir != "/var/lib/tutelar/data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.JWTAccessTTL != time.Hour {
		t.Errorf("JWTAccessTTL = %v, esperado 1h", cfg.JWTAccessTTL)
	}
	if len(cfg.AllowOrigins) != 2 || cfg.AllowOrigins[0] != "http://localhost:5173" {
		t.Errorf("AllowOrigins = %v", cfg.AllowOrigins)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "zero")

	if _, err := Load(); err == nil {
		t.Fatal("PORT inválida deveria ser rejeitada")
	}
}
