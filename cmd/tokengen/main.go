// Package main provides a CLI command that issues bearer tokens for the API.
// Usage: tokengen -sub NAME [-role recorder|reader] [-ttl 24h]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	hauth "game-history/internal/handler/http/auth"
)

func main() {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	flag.StringVar(&subject, "sub", "", "Token subject (service or user name)")
	flag.StringVar(&role, "role", hauth.RoleRecorder, "Role: recorder or reader")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	if subject == "" {
		fmt.Fprintln(os.Stderr, "Error: -sub is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: tokengen -sub NAME [-role recorder|reader] [-ttl 24h]")
		os.Exit(1)
	}
	if role != hauth.RoleRecorder && role != hauth.RoleReader {
		fmt.Fprintf(os.Stderr, "Error: unknown role %q\n", role)
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if err := hauth.ValidateSecret(secret); err != nil {
		fmt.Fprintf(os.Stderr, "Error: JWT_SECRET: %v\n", err)
		os.Exit(1)
	}

	token, err := hauth.IssueToken([]byte(secret), subject, role, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
