package entrypoint

import (
	"context"
	"errors"

	"smart_scout/internal/app"
	"smart_scout/internal/cli"
	"smart_scout/internal/subcommands/auth"
	"smart_scout/internal/subcommands/history"
	"smart_scout/internal/tui"
)

func Execute(args []string) (int, error) {
	if len(args) > 1 {
		switch args[1] {
		case "auth":
			if err := auth.Run(args[2:]); err != nil {
				return 1, err
			}
			return 0, nil
		case "history":
			if err := history.Run(args[2:]); err != nil {
				return 1, err
			}
			return 0, nil
		}
	}

	if len(args) == 1 {
		res, err := tui.Run()
		if err != nil {
			return 1, err
		}
		if !res.RunNow {
			return 0, nil
		}
		return 0, app.Run(context.Background(), res.Options)
	}

	opts, initConfig, err := cli.ParseArgs(args[1:])
	if err != nil {
		var exitErr cli.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code, exitErr.Err
		}
		return 1, err
	}

	if initConfig {
		return 0, cli.RunConfigWizard()
	}

	return 0, app.Run(context.Background(), opts)
}
