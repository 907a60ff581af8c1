// Command gallery browses a running gallery server from the terminal.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"marianails/internal/client"
	"marianails/internal/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hc := client.NewHTTPClient(strings.TrimRight(cfg.Client.BaseURL, "/"), cfg.Client.Timeout)
	renderer := client.NewTextRenderer(os.Stdout, hc.BaseURL())
	ctrl := client.NewController(client.NewAPI(hc), renderer, cfg.Gallery.PerPage)

	log.Debug().Str("base_url", hc.BaseURL()).Msg("gallery client starting")
	ctrl.Start(ctx)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "n", "next":
			if p := ctrl.LastView().Pagination; p != nil && p.NextDisabled {
				fmt.Println("already on the last page")
				continue
			}
			ctrl.Next(ctx)
		case "p", "prev", "previous":
			if _, ok := ctrl.Prev(ctx); !ok {
				fmt.Println("already on the first page")
			}
		case "r", "retry", "reload":
			ctrl.Reload(ctx)
		case "q", "quit", "exit":
			return
		case "":
		default:
			fmt.Println("commands: [n]ext, [p]rev, [r]eload, [q]uit")
		}
	}
}
