package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// parseQuantity reads "<value> <unit>", e.g. "4.861 um" or "13.3 Mpc".
func parseQuantity(s string) (quantity.Quantity, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return quantity.Quantity{}, fmt.Errorf("quantity %q: want \"<value> <unit>\"", s)
	}

	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return quantity.Quantity{}, fmt.Errorf("quantity %q: %w", s, err)
	}

	return quantity.Parse(v, strings.Join(fields[1:], " "))
}

func dopplerEquivalency(convention string, rest quantity.Quantity) (quantity.Equivalency, error) {
	switch strings.ToLower(convention) {
	case "relativistic", "":
		return quantity.DopplerRelativistic(rest)
	case "optical":
		return quantity.DopplerOptical(rest)
	case "radio":
		return quantity.DopplerRadio(rest)
	default:
		return quantity.Equivalency{}, fmt.Errorf("unknown doppler convention %q (want relativistic, optical or radio)", convention)
	}
}

func convertCmd() *cobra.Command {
	var (
		rest       string
		convention string
		distance   string
	)

	c := &cobra.Command{
		Use:   "convert <value> <from-unit> <to-unit>",
		Short: "Convert a quantity, optionally through Doppler or small-angle equivalencies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value %q: %w", args[0], err)
			}

			q, err := quantity.Parse(v, args[1])
			if err != nil {
				return err
			}

			to, err := quantity.ParseUnit(args[2])
			if err != nil {
				return err
			}

			eqs := []quantity.Equivalency{quantity.Spectral()}

			if rest != "" {
				r, err := parseQuantity(rest)
				if err != nil {
					return err
				}

				eq, err := dopplerEquivalency(convention, r)
				if err != nil {
					return err
				}

				eqs = append(eqs, eq)
			}

			if distance != "" {
				d, err := parseQuantity(distance)
				if err != nil {
					return err
				}

				eq, err := quantity.SmallAngle(d)
				if err != nil {
					return err
				}

				eqs = append(eqs, eq)
			}

			out, err := q.ToWith(to, eqs...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}

	c.Flags().StringVar(&rest, "doppler-rest", "", `rest wavelength for wavelength/velocity conversion, e.g. "4.861 um"`)
	c.Flags().StringVar(&convention, "doppler-convention", "relativistic", "relativistic, optical or radio")
	c.Flags().StringVar(&distance, "distance", "", `distance for angle/length conversion, e.g. "13.3 Mpc"`)

	return c
}
