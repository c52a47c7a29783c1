package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	mode      string
	gameStart string
)

func init() {
	joinCmd.Flags().StringVar(&mode, "mode", "small", "Game mode (small or large)")
	leaveCmd.Flags().StringVar(&mode, "mode", "small", "Game mode (small or large)")
	penaltyLeaveCmd.Flags().StringVar(&gameStart, "game-start", "", "Scheduled game start (RFC3339)")
	penaltyLeaveCmd.MarkFlagRequired("game-start")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(penaltyLeaveCmd)
	rootCmd.AddCommand(penaltyStatusCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <playerID>",
	Short: "Join the matchmaking queue for a mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queue/join?playerID=" + url.QueryEscape(args[0]) + "&mode=" + url.QueryEscape(mode))
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave <playerID>",
	Short: "Leave the matchmaking queue for a mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queue/leave?playerID=" + url.QueryEscape(args[0]) + "&mode=" + url.QueryEscape(mode))
	},
}

var penaltyLeaveCmd = &cobra.Command{
	Use:   "penalty-leave <playerID>",
	Short: "Record a game leave against a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/penalty/leave?playerID=" + url.QueryEscape(args[0]) + "&gameStart=" + url.QueryEscape(gameStart))
	},
}

var penaltyStatusCmd = &cobra.Command{
	Use:   "penalty-status <playerID>",
	Short: "Show a player's penalty tally and suspension state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/penalty/status?playerID=" + url.QueryEscape(args[0]))
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List all games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games")
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the field catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/fields")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members")
	},
}

var advanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Trigger a game lifecycle pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/lifecycle/advance")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
