// Package main provides a CLI for console session tokens.
//
// Usage:
//
//	session issue --user u1 --store 7 --store-kind own --backend-token <token>
//	session inspect <token>
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"storeops/internal/config"
	appctx "storeops/internal/core/context"
	"storeops/internal/domain/auth"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Printf("Error: failed to read .env: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "issue":
		issueToken()
	case "inspect":
		inspectToken()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`storeops session token CLI

Usage:
  session <command> [options]

Commands:
  issue     Sign a console session token
  inspect   Validate a token and print its session
  help      Show this help

Environment Variables:
  SESSION_SECRET      HMAC secret shared with the console (required)
  SESSION_TOKEN_TTL   Token lifetime, e.g. 12h (default 12h)

Examples:
  session issue --user u-17 --name "Store Manager" --store 7 --store-kind own --roles manager --backend-token abc
  session inspect eyJhbGciOi...`)
}

func tokenService() *auth.TokenService {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		fmt.Println("Error: SESSION_SECRET environment variable is required")
		os.Exit(1)
	}
	cfg := auth.DefaultTokenConfig(secret)
	if v := os.Getenv("SESSION_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			fmt.Printf("Error: invalid SESSION_TOKEN_TTL: %v\n", err)
			os.Exit(1)
		}
		cfg.TokenTTL = ttl
	}
	return auth.NewTokenService(cfg)
}

func issueToken() {
	var sess appctx.Session
	for i := 2; i < len(os.Args); i++ {
		if i+1 >= len(os.Args) {
			break
		}
		switch os.Args[i] {
		case "--user":
			sess.UserID = os.Args[i+1]
		case "--name":
			sess.UserName = os.Args[i+1]
		case "--store":
			sess.StoreID = os.Args[i+1]
		case "--store-kind":
			sess.StoreKind = os.Args[i+1]
		case "--roles":
			sess.Roles = strings.Split(os.Args[i+1], ",")
		case "--backend-token":
			sess.Token = os.Args[i+1]
		default:
			continue
		}
		i++
	}

	if sess.UserID == "" || sess.StoreID == "" {
		fmt.Println("Error: --user and --store are required")
		os.Exit(1)
	}

	token, expiresAt, err := tokenService().Issue(sess)
	if err != nil {
		fmt.Printf("Error: failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}

func inspectToken() {
	if len(os.Args) < 3 {
		fmt.Println("Error: token argument is required")
		os.Exit(1)
	}

	sess, err := tokenService().Validate(os.Args[2])
	if err != nil {
		fmt.Printf("Error: invalid token: %v\n", err)
		os.Exit(1)
	}

	// the backend credential is never printed
	sess.Token = strings.Repeat("*", min(len(sess.Token), 8))
	out, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(out))
}
