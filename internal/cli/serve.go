package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/querygate/querygate/internal/api"
)

var (
	serveHost       string
	servePort       string
	serveCORSOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the QueryGate HTTP API server",
	Long: `Start the HTTP API server exposing the query façade:

	POST /api/v1/query     - execute a request envelope
	GET  /api/v1/backends  - list configured database kinds
	GET  /api/v1/health    - per-backend connectivity check

The request body of /query is the uniform request envelope; the response
body is always the uniform response envelope, success or error.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to run the API server on")
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "", "Host to bind the API server to")
	serveCmd.Flags().StringVarP(&serveCORSOrigin, "cors-origin", "c", "", "CORS origin to allow (use '*' for all origins)")
}

func runServe(cmd *cobra.Command, args []string) error {
	apiCfg := cfg.API
	if serveHost != "" {
		apiCfg.Host = serveHost
	}
	if servePort != "" {
		apiCfg.Port = servePort
	}
	if serveCORSOrigin != "" {
		apiCfg.CORSOrigin = serveCORSOrigin
	}
	if apiCfg.Host == "" {
		apiCfg.Host = "0.0.0.0"
	}
	if apiCfg.Port == "" {
		apiCfg.Port = "8790"
	}

	kinds := registry.Kinds()
	if len(kinds) == 0 {
		return fmt.Errorf("no database backends available; check configuration")
	}

	fmt.Printf("🚀 Starting QueryGate API Server\n")
	fmt.Printf("================================\n")
	fmt.Printf("Host:     %s\n", apiCfg.Host)
	fmt.Printf("Port:     %s\n", apiCfg.Port)
	fmt.Printf("Backends: %v\n", kinds)
	if resultCache != nil {
		fmt.Printf("Cache:    redis\n")
	} else {
		fmt.Printf("Cache:    disabled\n")
	}
	fmt.Println()

	server := api.NewServer(newRouter(), registry, apiCfg)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\n🛑 Shutting down API server...")
		os.Exit(0)
	}()

	fmt.Println("🌐 API Server is running!")
	fmt.Println()
	fmt.Println("📚 Available Endpoints:")
	fmt.Println("    POST /api/v1/query     - execute a request envelope")
	fmt.Println("    GET  /api/v1/backends  - list configured database kinds")
	fmt.Println("    GET  /api/v1/health    - per-backend connectivity check")
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop the server")

	address := fmt.Sprintf("%s:%s", apiCfg.Host, apiCfg.Port)
	return server.Run(address)
}
