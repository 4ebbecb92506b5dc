package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gamebalance/internal/client"
	"gamebalance/internal/utils"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const clientKey = "client"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "gamebalance",
		Usage:    "track game time against daily and weekly limits",
		Metadata: map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Value:   "http://localhost:8080",
				EnvVars: []string{"GAMEBALANCE_API"},
				Usage:   "base URL of the GameBalance API",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "path of the local state file (default $XDG_CONFIG_HOME/gamebalance/state.yml)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log requests to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			logger := zap.NewNop()
			if c.Bool("verbose") {
				l, err := utils.NewLogger()
				if err != nil {
					return err
				}
				logger = l
			}

			path := c.String("state")
			if path == "" {
				p, err := client.DefaultStatePath()
				if err != nil {
					return err
				}
				path = p
			}
			state, err := client.LoadState(path)
			if err != nil {
				return err
			}

			httpClient := &http.Client{Timeout: 30 * time.Second}
			c.App.Metadata[clientKey] = client.New(c.String("api"), httpClient, state, logger)
			return nil
		},
		Commands: commands(),
	}
}

func clientFrom(c *cli.Context) *client.Client {
	return c.App.Metadata[clientKey].(*client.Client)
}
