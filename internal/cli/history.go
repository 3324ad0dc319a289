package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/javerbukh/jwebbinar-prep/internal/reportstore"
	"github.com/javerbukh/jwebbinar-prep/report"
)

const digestWidth = 12

func historyCmd(opts *rootOptions) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := reportstore.Open(opts.store)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.List(limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\tCreated\tTarget\tDigest\n")

			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.Target, shortDigest(r.Digest))
			}

			return tw.Flush()
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs (0 for all)")

	return c
}

// shortDigest returns the leading digestWidth characters of d.
func shortDigest(d string) string {
	return d[:min(digestWidth, len(d))]
}

func showCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			st, err := reportstore.Open(opts.store)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.Get(args[0])
			if err != nil {
				return err
			}

			return report.Write(cmd.OutOrStdout(), run.Report, f)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "output format: pretty, json or cbor")

	return c
}
