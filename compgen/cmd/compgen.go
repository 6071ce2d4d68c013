// Command-line interface for trying the generation pipeline without the UI
package main

import (
	"compgen/compgen/config"
	"compgen/compgen/controllers"
	"compgen/compgen/services/llm"
	"compgen/compgen/sources/psql"
	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/types"
	"compgen/compgen/utils/logging"
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	args := os.Args[1:]
	if len(args) < 1 || args[0] != "connect" {
		fmt.Println("compgen CLI usage:")
		fmt.Println("  compgen connect [user_id]   # Start a generation session in the terminal")
		os.Exit(1)
	}

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userID := 1
	if len(args) >= 2 {
		if id, err := strconv.Atoi(args[1]); err == nil {
			userID = id
		}
	}

	sessionDAO := dao.NewSessionDAO(db.DB)
	sess, err := sessionDAO.CreateSession(ctx, userID, "CLI session")
	if err != nil {
		logging.ErrorLogger.Error("session create error", zap.Error(err))
		os.Exit(1)
	}

	client := llm.NewOpenRouterClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey)
	aiCtrl := controllers.NewAIController(sessionDAO, client, cfg)

	fmt.Println("Session:", sess.ID)
	fmt.Println("Describe a component, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("compgen> ")
		if !scanner.Scan() {
			break // EOF or error
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}

		reqCtx, reqCancel := context.WithTimeout(context.Background(), 60*time.Second)
		resp, err := aiCtrl.Generate(reqCtx, userID, types.GenerateRequest{
			Prompt:    line,
			SessionID: sess.ID,
		})
		reqCancel()
		if err != nil {
			fmt.Println("generation failed:", err)
			continue
		}

		fmt.Println("\n--- JSX ---")
		fmt.Println(resp.Snapshot.JSX)
		if resp.Snapshot.CSS != "" {
			fmt.Println("\n--- CSS ---")
			fmt.Println(resp.Snapshot.CSS)
		}
		fmt.Println()
	}
}
