// Command smoke logs into the booking platform and walks one read path
// end to end. Run it against a staging platform after deploys.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/session"
	"flightdeck.io/console/internal/travel/remote"
)

func main() {
	base := os.Getenv("CONSOLE_API_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	email := os.Getenv("CONSOLE_SMOKE_EMAIL")
	password := os.Getenv("CONSOLE_SMOKE_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("set CONSOLE_SMOKE_EMAIL and CONSOLE_SMOKE_PASSWORD")
	}

	client := remote.NewClient(base)
	sessions := session.NewStore(session.NewMemoryKeyring(), client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := sessions.Login(ctx, email, password)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	if !sess.Authenticated() {
		log.Fatal("session restored without token or role")
	}

	ctx = session.ContextWithSession(ctx, sess)

	flights, err := client.Flights().List(ctx)
	if err != nil {
		log.Fatalf("list flights: %v", err)
	}

	if sess.Role == authz.RoleAdmin || sess.Role == authz.RoleModerator {
		tickets, err := client.Tickets().List(ctx)
		if err != nil {
			log.Fatalf("list tickets: %v", err)
		}
		fmt.Printf("tickets visible: %d\n", len(tickets))
	}

	if err := sessions.Logout(ctx); err != nil {
		log.Fatalf("logout: %v", err)
	}

	fmt.Printf("smoke test passed: role=%s flights=%d\n", sess.Role, len(flights))
}
