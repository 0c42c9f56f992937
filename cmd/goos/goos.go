package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/jxy/goos/internal/config"
	"github.com/jxy/goos/internal/log"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		_, _ = os.Stderr.WriteString("Param incorrect.\n")
		args = []string{"--help"}
	}

	var cli config.CLI
	parser, err := kong.New(&cli, config.Options(config.FindUserConfig(args))...)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	logger, closeFiles, err := log.SetupLogger(cli.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
