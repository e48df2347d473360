package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pegin-network/pegin-daemon/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "peg CLI"
	app.Usage = "Command line interface for making Bitcoin peg-in deposits"
	app.Commands = append(
		app.Commands,
		&deposit,
		&address,
		&status,
		&register,
		&list,
		&watch,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func printRespJSON(resp interface{}) {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(buf))
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[peg] %v\n", err)
	os.Exit(1)
}
