package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mauv0809/footle/internal/auth"
	"github.com/mauv0809/footle/internal/config"
	"github.com/spf13/cobra"
)

var (
	summaryDate   string
	summaryDryRun bool
	tokenUsername string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(guessCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(tokenCmd)

	transferCmd.AddCommand(transferStartCmd)
	transferCmd.AddCommand(transferGuessCmd)

	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "Day to report as YYYY-MM-DD (default yesterday)")
	summaryCmd.Flags().BoolVar(&summaryDryRun, "dry-run", false, "Log the Slack message instead of sending it")
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "", "Optional display name stored in the token")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's player game status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/game-status", nil)
	},
}

var guessCmd = &cobra.Command{
	Use:   "guess <player name>",
	Short: "Guess today's player",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/guess", guessBody(args))
	},
}

var namesCmd = &cobra.Command{
	Use:   "names [prefix]",
	Short: "Suggest player names, random ones without a prefix",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/player-names?query="+url.QueryEscape(strings.Join(args, " ")), nil)
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Play the daily transfer game",
}

var transferStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Show today's transfer question",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/transfer/start", nil)
	},
}

var transferGuessCmd = &cobra.Command{
	Use:   "guess <player name>",
	Short: "Guess who made today's transfer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/transfer/guess", guessBody(args))
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Post the daily summary to Slack (needs a token listed in ADMIN_USERS)",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if summaryDate != "" {
			q.Set("date", summaryDate)
		}
		if summaryDryRun {
			q.Set("dry_run", "true")
		}
		endpoint := "/daily-summary"
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
		return performRequest(http.MethodPost, endpoint, nil)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <user id>",
	Short: "Issue a development token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg, err := config.Parse()
		if err != nil {
			return err
		}
		signed, err := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL).Issue(args[0], tokenUsername)
		if err != nil {
			return err
		}
		fmt.Println(signed)
		return nil
	},
}

func guessBody(args []string) []byte {
	body, _ := json.Marshal(map[string]string{"player_name": strings.Join(args, " ")})
	return body
}

func performRequest(method, endpoint string, body []byte) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
