package filemap

import (
	"bufio"
	"fmt"
	"os"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newShellCmd(opts *rootOptions) *cobra.Command {
	var cwd string

	cmd := &cobra.Command{
		Use:     "shell",
		Short:   MsgShellShort,
		Long:    MsgShellLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, cwd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ip, err := newInterpreter(cfg, cwd, out)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			interactive := false
			if f, ok := in.(*os.File); ok {
				interactive = isTerminal(f)
			}
			prompt := func() {
				if interactive {
					_, _ = fmt.Fprint(out, MsgShellPrompt)
				}
			}

			scanner := bufio.NewScanner(in)
			prompt()
			for scanner.Scan() {
				if err := ip.Exec(scanner.Text()); err != nil {
					log.Error().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Command failed")
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgShellError, err)
				}
				prompt()
			}
			if interactive {
				_, _ = fmt.Fprintln(out)
			}
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, errors.ErrFileAccess, "failed to read input")
			}

			return renderManifest(cfg, out, ip.Manifest())
		},
	}
	cmd.Flags().StringVar(&cwd, "cwd", ".", MsgFlagCwd)
	return cmd
}
