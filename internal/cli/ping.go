package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity of every configured backend",
	RunE:  runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	kinds := registry.Kinds()
	if len(kinds) == 0 {
		return fmt.Errorf("no database backends available; check configuration")
	}

	failures := 0
	for _, kind := range kinds {
		handler, _ := registry.Get(kind)
		if err := handler.Ping(cmd.Context()); err != nil {
			fmt.Printf("❌ %-12s %v\n", kind, err)
			failures++
		} else {
			fmt.Printf("✅ %-12s ok\n", kind)
		}
	}

	if resultCache != nil {
		fmt.Printf("✅ %-12s ok\n", "redis")
	} else {
		fmt.Printf("⚪ %-12s disabled\n", "redis")
	}

	if failures > 0 {
		return fmt.Errorf("%d backend(s) unreachable", failures)
	}
	return nil
}
