package main

import (
	"os"
	"testing"
)

func TestParseConfigAppliesDefaults(t *testing.T) {
	cfg, err := parseConfig([]byte("host: 192.168.1.50\n"))
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.Port != 6053 {
		t.Fatalf("got port %d, want default 6053", cfg.Port)
	}
	if !cfg.ReconnectEnabled {
		t.Fatalf("expected reconnect_enabled to default true")
	}
}

func TestParseConfigRejectsMissingHost(t *testing.T) {
	_, err := parseConfig([]byte("port: 6053\n"))
	if err == nil {
		t.Fatal("expected validation error for missing host")
	}
}

func TestParseConfigExpandsEnvVars(t *testing.T) {
	os.Setenv("ESPHOME_TEST_HOST", "10.0.0.5")
	defer os.Unsetenv("ESPHOME_TEST_HOST")

	cfg, err := parseConfig([]byte("host: ${ESPHOME_TEST_HOST}\npassword: ${ESPHOME_TEST_PASSWORD:-fallback}\n"))
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.Host != "10.0.0.5" {
		t.Fatalf("got host %q, want 10.0.0.5", cfg.Host)
	}
	if cfg.Password != "fallback" {
		t.Fatalf("got password %q, want fallback", cfg.Password)
	}
}

func TestParsePSKRequires32Bytes(t *testing.T) {
	if _, err := parsePSK("abcd"); err == nil {
		t.Fatal("expected error for short key")
	}
	valid := "0102030405060708090a0b0c0d0e0f10000102030405060708090a0b0c0d0e0f"
	psk, err := parsePSK(valid)
	if err != nil {
		t.Fatalf("parsePSK: %v", err)
	}
	if psk[0] != 0x01 || psk[31] != 0x0f {
		t.Fatalf("unexpected decoded bytes: %x", psk[:])
	}
}
