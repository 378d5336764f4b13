// Command tokengen mints access tokens for exercising the protected routes
// locally. Pass one of the seeded principal ids and paste the output into an
// Authorization: Bearer header.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/webmenu/webmenu-auth/pkg/token"
)

func main() {
	secret := flag.String("secret", "very-secure-jwt-secret", "Secret key for signing the token")
	issuer := flag.String("issuer", "webmenu-auth", "Issuer of the token")
	principalStr := flag.String("principal", "", "Principal id (uuid) the token is minted for")
	expiry := flag.Duration("expiry", 1*time.Hour, "Token expiry duration (e.g., 30m, 1h, 24h)")
	outputFormat := flag.String("format", "compact", "Output format: compact, full, or debug")
	flag.Parse()

	principalID, err := uuid.Parse(*principalStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -principal must be a valid uuid: %v\n", err)
		os.Exit(1)
	}

	jwtService := token.NewJwtService(*secret,
		token.WithExpiry(*expiry),
		token.WithIssuer(*issuer),
	)

	accessToken, err := jwtService.CreateAccessToken(principalID)
	if err != nil {
		slog.Error("Failed to mint token", "err", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to mint token: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "compact":
		fmt.Println(accessToken.Token)
	case "full":
		fmt.Printf("Token: %s\nExpires: %s\n", accessToken.Token, accessToken.Expiry.Format(time.RFC3339))
	case "debug":
		parsed, err := jwtService.ParseTokenStr(accessToken.Token)
		if err != nil {
			slog.Error("Failed to parse minted token", "err", err)
			fmt.Fprintf(os.Stderr, "Error: Failed to parse minted token: %v\n", err)
			os.Exit(1)
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: Failed to get claims from token\n")
			os.Exit(1)
		}

		fmt.Printf("=== Token Information ===\n")
		fmt.Printf("Token: %s\n\n", accessToken.Token)
		fmt.Printf("=== Token Header ===\n")
		headerJSON, _ := json.MarshalIndent(parsed.Header, "", "  ")
		fmt.Printf("%s\n\n", headerJSON)
		fmt.Printf("=== Token Claims ===\n")
		claimsJSON, _ := json.MarshalIndent(claims, "", "  ")
		fmt.Printf("%s\n\n", claimsJSON)
		fmt.Printf("Expires: %s\n", accessToken.Expiry.Format(time.RFC3339))
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown output format: %s\n", *outputFormat)
		os.Exit(1)
	}
}
