package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javerbukh/jwebbinar-prep/internal/config"
	"github.com/javerbukh/jwebbinar-prep/internal/logger"
	"github.com/javerbukh/jwebbinar-prep/internal/reportstore"
	"github.com/javerbukh/jwebbinar-prep/phys/derive"
	"github.com/javerbukh/jwebbinar-prep/report"
)

var errNoTarget = errors.New("no target file (use -f or " + EnvTarget + ")")

func targetPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	if v := envOr(EnvTarget, ""); v != "" {
		return v, nil
	}

	return "", errNoTarget
}

func deriveCmd(opts *rootOptions) *cobra.Command {
	var (
		file   string
		format string
		save   bool
	)

	c := &cobra.Command{
		Use:   "derive",
		Short: "Run the derivations listed in a target file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			path, err := targetPath(file)
			if err != nil {
				return err
			}

			tg, err := config.Load(path)
			if err != nil {
				return err
			}

			log := logger.L().With("target", tg.Name)
			log.Info("derive.start", "path", path)

			res, err := derive.NewPipeline(tg.Constants, derive.WithLogger(log)).Run(tg.State, tg.Plan)
			if err != nil {
				log.Error("derive.failed", "error", err)
				return err
			}

			rep := report.FromResult(res)

			if save {
				st, err := reportstore.Open(opts.store)
				if err != nil {
					return err
				}
				defer st.Close()

				run, err := st.Save(rep)
				if err != nil {
					return err
				}

				log.Info("derive.saved", "run", run.ID, "digest", run.Digest)
				fmt.Fprintf(cmd.ErrOrStderr(), "saved run %s\n", run.ID)
			}

			return report.Write(cmd.OutOrStdout(), rep, f)
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "target file, .yaml or .toml (env "+EnvTarget+")")
	c.Flags().StringVar(&format, "format", "pretty", "output format: pretty, json or cbor")
	c.Flags().BoolVar(&save, "save", false, "store the report in the run history")

	return c
}

func validateCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check a target file without deriving anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := targetPath(file)
			if err != nil {
				return err
			}

			tg, err := config.Load(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK %s: %d measurements\n", tg.Name, len(tg.State.Measurements()))

			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "target file, .yaml or .toml (env "+EnvTarget+")")

	return c
}
