package filemap

import (
	"fmt"

	"github.com/arthur-debert/filemap/pkg/filesystem"
	"github.com/arthur-debert/filemap/pkg/fmlang"
	"github.com/spf13/cobra"
)

func newCollectCmd(opts *rootOptions) *cobra.Command {
	var (
		recurse  bool
		empties  bool
		excludes []string
		run      bool
	)

	cmd := &cobra.Command{
		Use:     "collect <dir>",
		Short:   MsgCollectShort,
		Long:    MsgCollectLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, ".")
			if err != nil {
				return err
			}

			copts := fmlang.CollectOptions{
				Source:   args[0],
				Recurse:  recurse,
				Empties:  empties,
				Excludes: append(append([]string(nil), cfg.Excludes...), excludes...),
			}

			if !run {
				script, err := fmlang.CollectScript(copts)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), script)
				return err
			}

			m, err := fmlang.Collect(filesystem.NewOS(), copts)
			if err != nil {
				return err
			}
			return renderManifest(cfg, cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().BoolVar(&recurse, "recurse", true, MsgFlagRecurse)
	cmd.Flags().BoolVar(&empties, "empties", true, MsgFlagEmpties)
	cmd.Flags().StringArrayVarP(&excludes, "exclude", "x", nil, MsgFlagExclude)
	cmd.Flags().BoolVar(&run, "run", false, MsgFlagRun)
	return cmd
}
