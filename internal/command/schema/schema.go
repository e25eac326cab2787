package schema

import (
	"github.com/bornholm/profilefinder/pkg/profile"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Schema() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the lookup output",
		Action: func(cliCtx *cli.Context) error {
			data, err := sonic.ConfigDefault.MarshalIndent(profile.Schema(), "", "  ")
			if err != nil {
				return errors.Wrap(err, "could not encode schema")
			}

			if _, err := cliCtx.App.Writer.Write(append(data, '\n')); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
