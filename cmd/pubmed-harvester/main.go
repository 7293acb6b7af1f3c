// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-harvester CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-harvester/internal/eutils"
	"github.com/pdiddy/pubmed-harvester/internal/secrets"
	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "pubmed-harvester/0.1"
	defaultTool      = "pubmed-harvester"
)

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pubmed-harvester CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-harvester",
	Short: "Query PubMed and harvest article records",
	Long: `pubmed-harvester resolves PubMed search queries to article identifiers,
fetches the matching records, and parses them into structured articles.

Queries with more matches than the service returns in one response are
partitioned by publication date and resolved piece by piece. Outbound
requests respect the service rate limit: 3 per second anonymously, 10
with an NCBI API key (place it in .secrets/ncbi-api-key).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-harvester.yaml or ~/.config/pubmed-harvester/config.yaml)")
	rootCmd.PersistentFlags().String("email", "", "contact email reported to the service (default: .secrets/contact-email)")
	rootCmd.PersistentFlags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	rootCmd.PersistentFlags().Int("max-retries", 0, "retries on HTTP 429 responses (0 = fail immediately)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-harvester")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-harvester"))
		}
	}

	viper.SetEnvPrefix("PUBMED_HARVESTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// clientConfig assembles the E-utilities client settings from flags,
// config file, and secrets, in that order of precedence.
func clientConfig(cmd *cobra.Command) types.ClientConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = viper.GetString("email")
	}
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	if maxRetries == 0 {
		maxRetries = viper.GetInt("max_retries")
	}

	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Tool:       defaultTool,
		Email:      secretDefault(secrets.ContactEmail, email),
		APIKey:     secretDefault(secrets.NCBIAPIKey, apiKey),
		MaxRetries: maxRetries,
	}
}

func newClient(cmd *cobra.Command) *eutils.Client {
	return eutils.New(clientConfig(cmd))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
