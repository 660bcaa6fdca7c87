// Command devtoken prints a booking token signed with JWT_SECRET, for local
// development against a server that has no identity provider in front of it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/config"
)

func main() {
	sub := flag.String("sub", "", "user id to put in the token subject (required)")
	name := flag.String("name", "", "display name recorded as the booker")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_ACCESS_TOKEN_TTL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	lifetime := cfg.JWTAccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, lifetime).IssueToken(auth.Identity{UserID: *sub, Name: *name})
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(lifetime).Format(time.RFC3339))
}
