// Command dicedelve starts the DiceDelve game server.
//
// It supports three modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – runs an interactive terminal session against the engine directly
//
// Flags control host/port, ruleset directory, debug logging, and version output.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/dicedelve/api"
	"github.com/wricardo/mcp-training/dicedelve/game/config"
	"github.com/wricardo/mcp-training/dicedelve/game/service"
	"github.com/wricardo/mcp-training/dicedelve/game/session"
	"github.com/wricardo/mcp-training/dicedelve/transport/mcp"
	"github.com/wricardo/mcp-training/dicedelve/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "DiceDelve Server"
)

// main parses the command line and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "dicedelve",
		Usage:   "dice dungeon game server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Value: 8080,
				Usage: "HTTP server port",
			},
			&cli.StringFlag{
				Name:  "host",
				Value: "localhost",
				Usage: "HTTP server host",
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing ruleset files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdioMCP,
			},
			{
				Name:  "play",
				Usage: "Play an interactive game in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "ruleset",
						Usage: "Ruleset to play (defaults to standard)",
					},
					&cli.StringFlag{
						Name:  "character",
						Usage: "Character to play: adventurer, knight or minstrel",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Seed for a reproducible run",
					},
				},
				Action: runPlay,
			},
		},
		// No subcommand means serve.
		Action: runServe,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// initializeServices wires session/config managers and the game service.
// It also starts a background cleanup routine to prune stale sessions.
func initializeServices(configDir string) service.GameService {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		log.Printf("Ruleset directory unavailable (%v), using built-in rulesets", err)
		configManager = config.NewBuiltinManager()
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(sessionManager)

	return gameService
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp
// proxy endpoint.
func runServe(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	log.Printf("Starting %s v%s", AppName, Version)

	gameService := initializeServices(cmd.String("config-dir"))

	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create API server
	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))

	// Create MCP client for /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an external API at
// http://localhost:8080; if unavailable, it starts a minimal internal HTTP API
// bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	log.Printf("Starting %s v%s (mcp)", AppName, Version)

	gameService := initializeServices(cmd.String("config-dir"))

	var baseURL string

	// First, try to connect to an external API server
	externalURL := "http://localhost:8080"
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		apiServer := api.NewServer(gameService, hub)
		httpServer := &http.Server{Handler: apiServer}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Println("MCP stdio server ready")
	if err := mcpserver.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runPlay drives a single game session interactively on the terminal. It
// talks to the service layer directly; no HTTP server is started.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	gameService := initializeServices(cmd.String("config-dir"))

	opts := service.CreateOptions{
		RulesetName: cmd.String("ruleset"),
		Character:   cmd.String("character"),
	}
	if cmd.IsSet("seed") {
		seed := cmd.Int64("seed")
		opts.Seed = &seed
	}

	info, err := gameService.CreateSession(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("DiceDelve - session %s (ruleset %s, character %s)\n",
		info.ID, info.RulesetName, info.Character)
	fmt.Println("Type 'help' for commands, 'quit' to leave.")
	fmt.Printf("\n%s\n", info.State.Brief)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "quit", "exit":
			return nil
		case "help":
			printPlayHelp(ctx, gameService, info.ID)
			continue
		case "state":
			state, err := gameService.GetGameState(ctx, info.ID)
			if err != nil {
				return err
			}
			fmt.Println(state.Brief)
			fmt.Printf("legal: %s\n", strings.Join(state.LegalCommands, ", "))
			continue
		case "score":
			score, err := gameService.GetScore(ctx, info.ID)
			if err != nil {
				return err
			}
			fmt.Printf("score=%d experience=%d\n", score.Score, score.Experience)
			continue
		}

		name, args, err := service.ParseCommandLine(line)
		if err != nil {
			fmt.Printf("! %v\n", err)
			continue
		}

		result, err := gameService.Command(ctx, info.ID, name, args)
		if err != nil {
			return err
		}

		if !result.Success {
			fmt.Printf("! %s\n", result.Message)
			continue
		}
		for _, event := range result.Events {
			fmt.Printf("* %s\n", event.Message)
		}
		fmt.Println(result.State.Brief)

		if result.State.GameOver {
			fmt.Printf("\nGame over. Final score: %d\n", result.State.Score)
			return nil
		}
	}
	return scanner.Err()
}

func printPlayHelp(ctx context.Context, gameService service.GameService, sessionID string) {
	fmt.Println("Commands:")
	fmt.Println("  descend                   go one level deeper and roll dungeon dice")
	fmt.Println("  <hero> <target>...        spend a die, e.g. 'fighter goblin' or 'champion ooze ooze'")
	fmt.Println("  <treasure> <target>...    play a token, e.g. 'tools chest' or 'bait'")
	fmt.Println("  scroll <target>...        reroll the named dungeon dice")
	fmt.Println("  ability [target]          use the character ability")
	fmt.Println("  <hero> dragon <hero>...   fight the dragon with exactly the required dice")
	fmt.Println("  retire | retreat          end the delve")
	fmt.Println("  state | score | quit")

	state, err := gameService.GetGameState(ctx, sessionID)
	if err == nil {
		fmt.Printf("Currently legal: %s\n", strings.Join(state.LegalCommands, ", "))
	}
}
