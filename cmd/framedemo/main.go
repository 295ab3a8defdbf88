// Command framedemo runs a synthetic read/write workload on a frame scheduler
// and exposes its metrics for Prometheus.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "framedemo",
		Usage: "Drive a frame scheduler with a synthetic layout workload",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "Load flag defaults from this dotenv file when it exists",
				EnvVars: []string{"FRAMEDEMO_ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"FRAMEDEMO_LOG_LEVEL"},
			},
		},
		Before:   loadEnvFile,
		Commands: []*cli.Command{RunCommand()},
	}
}
