// Command bootstrap-write-token generates a write token for the ledger
// API and prints the hash to configure the server with. The plaintext
// token is shown once; only the hash is stored.
//
// Usage:
//
//	go run ./scripts/bootstrap-write-token.go
//	go run ./scripts/bootstrap-write-token.go -format json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cympfh/shanghai/internal/auth"
)

type output struct {
	TokenID string `json:"token_id"`
	Token   string `json:"token"`
	Hash    string `json:"write_token_hash"`
}

func main() {
	format := flag.String("format", "plain", "Output format: plain or json")
	flag.Parse()

	generated, err := auth.GenerateWriteToken()
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate write token:", err)
		os.Exit(1)
	}

	out := output{
		TokenID: generated.ID,
		Token:   generated.Plaintext,
		Hash:    generated.Hash,
	}

	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Write token generated. The token is shown once; store it now.")
	fmt.Println()
	fmt.Printf("  token id: %s\n", out.TokenID)
	fmt.Printf("  token:    %s\n", out.Token)
	fmt.Println()
	fmt.Println("Configure the server with:")
	fmt.Printf("  WRITE_TOKEN_HASH='%s'\n", out.Hash)
}
