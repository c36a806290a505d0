package filemap

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/fmlang"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		cwd       string
		keepGoing bool
	)

	cmd := &cobra.Command{
		Use:     "run [script...]",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, cwd)
			if err != nil {
				return err
			}
			ip, err := newInterpreter(cfg, cwd, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, name := range args {
				if err := runScript(cmd, ip, name, keepGoing); err != nil {
					return err
				}
			}
			return renderManifest(cfg, cmd.OutOrStdout(), ip.Manifest())
		},
	}
	cmd.Flags().StringVar(&cwd, "cwd", ".", MsgFlagCwd)
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, MsgFlagKeepGoing)
	return cmd
}

// runScript feeds one script, a path or "-" for stdin, to ip
func runScript(cmd *cobra.Command, ip *fmlang.Interpreter, name string, keepGoing bool) error {
	var r io.Reader
	if name == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, MsgErrOpenScript, name).
				WithDetail("path", name)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	log.Info().Str("script", name).Str("cwd", ip.Cwd()).Msg("Running script")
	if !keepGoing {
		if err := ip.Run(r); err != nil {
			return fmt.Errorf(MsgErrRunScript, name, err)
		}
		return nil
	}

	failed := 0
	err := ip.RunWith(r, func(lineNo int, line string, err error) error {
		failed++
		log.Error().Err(err).Str("script", name).Int("line", lineNo).Str("text", line).Msg("Command failed")
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		log.Warn().Str("script", name).Msgf(MsgKeepGoingSummary, failed)
	}
	return nil
}
