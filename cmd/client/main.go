package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/benbeisheim/chess-server/internal/client"
	"github.com/benbeisheim/chess-server/internal/config"
)

func main() {
	cfg, err := config.LoadClient(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, color := client.Stdout()
	repl := client.New(
		client.NewServerFacade(cfg.ServerURL),
		client.Dialer(cfg.ServerURL),
		out,
		client.Renderer{Color: color},
	)
	if err := repl.Run(ctx, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
