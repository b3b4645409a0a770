package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/querygate/querygate/internal/models"
)

var queryFile string

var queryCmd = &cobra.Command{
	Use:   "query [request-json]",
	Short: "Execute a single request envelope",
	Long: `Execute one request envelope and print the response envelope.

The request is read from the positional argument, from --file, or from
stdin. Example:

	querygate query '{"db_type": "sqlite", "operation": "select",
	                  "query": "SELECT name FROM sqlite_master WHERE type=''table''"}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the request envelope from a file")
}

func runQuery(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error

	switch {
	case queryFile != "":
		raw, err = os.ReadFile(queryFile)
		if err != nil {
			return fmt.Errorf("failed to read request file: %w", err)
		}
	case len(args) == 1:
		raw = []byte(args[0])
	default:
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read request from stdin: %w", err)
		}
	}

	var req models.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("invalid request envelope: %w", err)
	}

	resp := newRouter().Handle(cmd.Context(), req)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render response: %w", err)
	}
	fmt.Println(string(out))

	if !resp.IsSuccess() {
		os.Exit(1)
	}
	return nil
}
