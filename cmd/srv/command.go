package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Craftloop"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Start the main api service serving all endpoints.`,
		},
		{
			Action:      server.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start service subscriber",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Start the worker delivering notification events from the message queue.`,
		},
	}

	s.app = app
}
