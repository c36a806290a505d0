package filemap

import (
	"fmt"

	"github.com/arthur-debert/filemap/pkg/stage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newStageCmd(opts *rootOptions) *cobra.Command {
	var (
		cwd    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "stage <script> <outdir>",
		Short:   MsgStageShort,
		Long:    MsgStageLong,
		Args:    cobra.ExactArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			script, outDir := args[0], args[1]

			cfg, err := opts.loadConfig(cmd, cwd)
			if err != nil {
				return err
			}
			dirMode, err := cfg.DirMode()
			if err != nil {
				return err
			}
			ip, err := newInterpreter(cfg, cwd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := runScript(cmd, ip, script, false); err != nil {
				return err
			}

			log.Info().Str("outDir", outDir).Bool("dryRun", dryRun).Msg("Staging manifest")
			steps, err := stage.New(stage.Options{DryRun: dryRun, DirMode: dirMode}).
				Stage(cmd.Context(), ip.Manifest(), outDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(steps) == 0 {
				_, err := fmt.Fprintln(out, MsgNoSteps)
				return err
			}
			_, _ = fmt.Fprintf(out, MsgStepsFormat, ip.Manifest().Len(), outDir)
			for _, st := range steps {
				_, _ = fmt.Fprintf(out, MsgStepItem, st)
			}
			if dryRun {
				_, _ = fmt.Fprintln(out, MsgDryRunNotice)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cwd, "cwd", ".", MsgFlagCwd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}
