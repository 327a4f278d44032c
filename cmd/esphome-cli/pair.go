package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	esphome "github.com/LRuesink-WebArray/esphome-native-api"
)

// pairWizard drives an interactive setup session, the same huh/lipgloss
// shape as the teacher's internal/wizard.Wizard: a themed multi-group form
// followed by a live connection test and a written config file.
type pairWizard struct {
	theme *huh.Theme
}

func pairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair",
		Short: "Interactively configure and test a connection to a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &pairWizard{theme: huh.ThemeDracula()}
			return w.run()
		},
	}
}

func (w *pairWizard) run() error {
	w.printBanner()

	host, port, password, useNoise, configPath, err := w.askConnection()
	if err != nil {
		return err
	}

	var pskHex string
	if useNoise {
		pskHex, err = w.askPSK()
		if err != nil {
			return err
		}
	}

	fc := &fileConfig{
		Host:             host,
		Port:             port,
		Password:         password,
		NoisePSK:         pskHex,
		ClientInfo:       "esphome-cli",
		ConnectTimeout:   10 * time.Second,
		ReconnectEnabled: true,
		LogLevel:         "info",
		LogFormat:        "text",
	}

	fmt.Println("\nTesting connection...")
	if err := w.testConnection(fc); err != nil {
		fmt.Printf("Connection test failed: %v\n", err)
		proceed := false
		confirm := huh.NewConfirm().
			Title("Save this configuration anyway?").
			Value(&proceed)
		if ferr := huh.NewForm(huh.NewGroup(confirm)).WithTheme(w.theme).Run(); ferr != nil {
			return ferr
		}
		if !proceed {
			return fmt.Errorf("pairing aborted")
		}
	} else {
		fmt.Println("Connected successfully.")
	}

	if err := w.writeConfig(fc, configPath); err != nil {
		return err
	}
	fmt.Printf("Wrote configuration to %s\n", configPath)
	return nil
}

func (w *pairWizard) printBanner() {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Render("esphome-cli pair")
	subtitle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("Set up a connection to an ESPHome device")
	fmt.Println(title)
	fmt.Println(subtitle)
}

func (w *pairWizard) askConnection() (host string, port int, password string, useNoise bool, configPath string, err error) {
	portStr := "6053"
	configPath = "./esphome.yaml"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Device host or IP").
				Placeholder("192.168.1.50").
				Value(&host).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("host is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("API port").
				Placeholder("6053").
				Value(&portStr),

			huh.NewInput().
				Title("API password (leave blank if none)").
				Value(&password),

			huh.NewConfirm().
				Title("Use Noise encryption (PSK)?").
				Value(&useNoise),

			huh.NewInput().
				Title("Config file path").
				Placeholder("./esphome.yaml").
				Value(&configPath),
		),
	).WithTheme(w.theme)

	if ferr := form.Run(); ferr != nil {
		return "", 0, "", false, "", ferr
	}

	port, perr := strconv.Atoi(portStr)
	if perr != nil {
		return "", 0, "", false, "", fmt.Errorf("invalid port %q: %w", portStr, perr)
	}
	return host, port, password, useNoise, configPath, nil
}

func (w *pairWizard) askPSK() (string, error) {
	var choice string
	var psk string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pre-shared key").
				Options(
					huh.NewOption("Generate a new random key", "generate"),
					huh.NewOption("Enter an existing key (hex)", "enter"),
				).
				Value(&choice),
		),
	).WithTheme(w.theme)
	if err := form.Run(); err != nil {
		return "", err
	}

	if choice == "generate" {
		var b [32]byte
		if _, err := rand.Read(b[:]); err != nil {
			return "", fmt.Errorf("generate psk: %w", err)
		}
		psk = hex.EncodeToString(b[:])
		fmt.Printf("Generated PSK (hex, for this config file): %s\n", psk)
		fmt.Printf("Device-side api.encryption.key (base64): %s\n", base64.StdEncoding.EncodeToString(b[:]))
		return psk, nil
	}

	enterForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("PSK (64 hex characters)").
				Value(&psk).
				Validate(func(s string) error {
					if _, err := parsePSK(s); err != nil {
						return err
					}
					return nil
				}),
		),
	).WithTheme(w.theme)
	if err := enterForm.Run(); err != nil {
		return "", err
	}
	return psk, nil
}

func (w *pairWizard) testConnection(fc *fileConfig) error {
	cfg := esphome.ConnectionConfig{
		Host:           fc.Host,
		Port:           fc.Port,
		Password:       fc.Password,
		ConnectTimeout: 10 * time.Second,
	}
	if fc.NoisePSK != "" {
		psk, err := parsePSK(fc.NoisePSK)
		if err != nil {
			return err
		}
		cfg.NoisePSK = psk
	}

	client, err := esphome.New(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Connect(ctx)
}

func (w *pairWizard) writeConfig(fc *fileConfig, path string) error {
	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
