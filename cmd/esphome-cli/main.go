// Package main provides the CLI entry point for the ESPHome Native API client.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	esphome "github.com/LRuesink-WebArray/esphome-native-api"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/logging"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "esphome-cli",
		Short:   "esphome-cli - a client for the ESPHome Native API",
		Long:    "esphome-cli connects to an ESPHome device over its Native API, lists entities, streams state and log updates, and sends commands.",
		Version: Version,
	}

	rootCmd.AddCommand(connectCmd())
	rootCmd.AddCommand(listEntitiesCmd())
	rootCmd.AddCommand(subscribeCmd())
	rootCmd.AddCommand(discoverCmd())
	rootCmd.AddCommand(pairCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildClient loads a fileConfig from configPath and constructs a Client
// from it, the same "file config layered over the library's plain struct
// config" split the library itself documents in config.go.
func buildClient(configPath string) (*esphome.Client, error) {
	fc, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	cfg := esphome.ConnectionConfig{
		Host:              fc.Host,
		Port:              fc.Port,
		Password:          fc.Password,
		ClientInfo:        fc.ClientInfo,
		ConnectTimeout:    fc.ConnectTimeout,
		ReconnectInterval: fc.ReconnectInterval,
		PingInterval:      fc.PingInterval,
		PingTimeout:       fc.PingTimeout,
		ReconnectDisabled: !fc.ReconnectEnabled,
		Logger:            logging.NewLogger(fc.LogLevel, fc.LogFormat),
	}

	if fc.NoisePSK != "" {
		psk, err := parsePSK(fc.NoisePSK)
		if err != nil {
			return nil, fmt.Errorf("noise_psk: %w", err)
		}
		cfg.NoisePSK = psk
	}

	return esphome.New(cfg)
}

func parsePSK(s string) (*[32]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("not valid hex: %w", err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("must decode to 32 bytes, got %d", len(b))
	}
	var psk [32]byte
	copy(psk[:], b)
	return &psk, nil
}

func connectCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a device and print its device info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(configPath)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := client.Connect(ctx); err != nil {
				return fmt.Errorf("connect failed: %w", err)
			}

			info, err := client.DeviceInfo()
			if err != nil {
				return fmt.Errorf("device info: %w", err)
			}

			fmt.Printf("Connected to %s (%s)\n", info.Name, info.MacAddress)
			fmt.Printf("ESPHome version: %s, compiled %s\n", info.EsphomeVersion, info.CompilationTime)
			fmt.Printf("Model: %s, Manufacturer: %s\n", info.Model, info.Manufacturer)
			if info.HasDeepSleep {
				fmt.Println("Deep sleep: enabled")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "./esphome.yaml", "Path to configuration file")
	return cmd
}

func listEntitiesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list-entities",
		Short: "Connect and print the device's entity catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(configPath)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := client.Connect(ctx); err != nil {
				return fmt.Errorf("connect failed: %w", err)
			}

			entities, err := client.ListEntities(ctx)
			if err != nil {
				return fmt.Errorf("list entities: %w", err)
			}

			for _, e := range entities {
				fmt.Printf("%-6d %-12s %-30s (%s)\n", e.Key, e.Domain, e.Name, e.ObjectID)
			}
			fmt.Printf("\n%s entities\n", humanize.Comma(int64(len(entities))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "./esphome.yaml", "Path to configuration file")
	return cmd
}

func subscribeCmd() *cobra.Command {
	var configPath string
	var logs bool

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Connect and stream state updates (or logs with --logs) until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(configPath)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := client.Connect(ctx); err != nil {
				return fmt.Errorf("connect failed: %w", err)
			}

			if logs {
				client.OnLog(func(e esphome.LogEvent) {
					fmt.Printf("[log] %s\n", e.Message)
				})
				if err := client.SubscribeLogs(0, false); err != nil {
					return fmt.Errorf("subscribe logs: %w", err)
				}
			} else {
				if _, err := client.ListEntities(ctx); err != nil {
					return fmt.Errorf("list entities: %w", err)
				}
				client.OnState(func(e esphome.StateEvent) {
					fmt.Printf("[state] key=%d domain=%s\n", e.Key, e.Domain)
				})
				if err := client.SubscribeStates(); err != nil {
					return fmt.Errorf("subscribe states: %w", err)
				}
			}

			fmt.Println("Subscribed. Press Ctrl+C to stop.")
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			fmt.Println("\nStopping.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "./esphome.yaml", "Path to configuration file")
	cmd.Flags().BoolVar(&logs, "logs", false, "stream log lines instead of state updates")
	return cmd
}

// discoverCmd probes an explicit list of hosts for a live ESPHome Native
// API endpoint. This module does not implement mDNS discovery, so unlike
// an mDNS-backed "discover" this sweeps caller-supplied candidates rather
// than scanning the local network itself.
func discoverCmd() *cobra.Command {
	var hosts []string
	var port int
	var password string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Probe a list of candidate hosts for a reachable ESPHome device",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(hosts) == 0 {
				return fmt.Errorf("at least one --host is required")
			}

			found := 0
			for _, host := range hosts {
				info, err := probeHost(host, port, password, timeout)
				if err != nil {
					fmt.Printf("%-20s unreachable: %v\n", host, err)
					continue
				}
				found++
				fmt.Printf("%-20s %s (%s, esphome %s)\n", host, info.Name, info.Model, info.EsphomeVersion)
			}
			fmt.Printf("\n%s of %s hosts responded\n", humanize.Comma(int64(found)), humanize.Comma(int64(len(hosts))))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&hosts, "host", nil, "candidate host or IP to probe (repeatable)")
	cmd.Flags().IntVar(&port, "port", 6053, "API port to probe")
	cmd.Flags().StringVar(&password, "password", "", "API password, if any candidate requires one")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "per-host connect timeout")
	return cmd
}

func probeHost(host string, port int, password string, timeout time.Duration) (*esphomeDeviceSummary, error) {
	client, err := esphome.New(esphome.ConnectionConfig{
		Host:           host,
		Port:           port,
		Password:       password,
		ConnectTimeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	info, err := client.DeviceInfo()
	if err != nil {
		return nil, err
	}
	return &esphomeDeviceSummary{Name: info.Name, Model: info.Model, EsphomeVersion: info.EsphomeVersion}, nil
}

type esphomeDeviceSummary struct {
	Name           string
	Model          string
	EsphomeVersion string
}
