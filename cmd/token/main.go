// Command token mints a bearer token for the catalog's write routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/5w1tchy/catalog-api/internal/config"
	jwtutil "github.com/5w1tchy/catalog-api/internal/security/jwt"
)

func main() {
	var (
		subject = flag.String("sub", "ops", "Token subject")
		scope   = flag.String("scope", jwtutil.ScopeWrite, "Space-separated scopes")
		ttl     = flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("AUTH_JWT_SECRET must be set (at least 32 characters)")
	}

	signer := jwtutil.NewSigner(jwtutil.Config{Secret: []byte(cfg.JWTSecret), ClockSkew: cfg.ClockSkew})
	tok, jti, err := signer.SignAccess(*subject, *scope, *ttl)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	log.Printf("[token] sub=%s jti=%s expires=%s", *subject, jti, time.Now().Add(*ttl).Format(time.RFC3339))
	fmt.Println(tok)
}
