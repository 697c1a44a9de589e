package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/cmdmenu/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()

	code, err := cli.Run(ctx, cli.Options{Verbose: isVerbose()})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("CMDMENU_DEBUG"), "1") || strings.EqualFold(os.Getenv("CMDMENU_DEBUG"), "true")
}
