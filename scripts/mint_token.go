package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/pkg/auth"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run scripts/mint_token.go <cashier_name> <terminal_id>")
	}

	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	cashierName := os.Args[1]
	terminalID := os.Args[2]

	manager := auth.NewJWTManager(cfg)
	token, err := manager.GenerateToken(cashierName, terminalID, 12*time.Hour)
	if err != nil {
		log.Fatal("Error generating token:", err)
	}

	fmt.Printf("Cashier: %s\n", cashierName)
	fmt.Printf("Terminal: %s\n", terminalID)
	fmt.Printf("Token: %s\n", token)

	claims, err := manager.ValidateToken(token)
	if err != nil {
		log.Fatal("Token verification failed:", err)
	}

	fmt.Printf("✅ Token verified, expires %s\n", claims.ExpiresAt.Format(time.RFC3339))
}
