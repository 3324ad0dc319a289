package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// Format selects an output encoding.
type Format string

// Supported formats.
const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatCBOR   Format = "cbor"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat maps a name to a Format. The empty name is FormatPretty.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatPretty, nil
	case FormatPretty, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want pretty, json or cbor)", ErrUnknownFormat, name)
	}
}

// Write renders r to w in format f.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatPretty, "":
		return WritePretty(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatCBOR:
		return WriteCBOR(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Underline(true)
	caveatStyle  = lipgloss.NewStyle().Faint(true)
)

// WritePretty writes r as aligned tables, one per section.
func WritePretty(w io.Writer, r Report) error {
	title := r.Target
	if title == "" {
		title = "derived quantities"
	}

	if _, err := fmt.Fprintln(w, headingStyle.Render(title)); err != nil {
		return err
	}

	for _, section := range []string{SectionDispersion, SectionRotation} {
		var rows []Entry
		for _, e := range r.Entries {
			if e.Section == section {
				rows = append(rows, e)
			}
		}

		if len(rows) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(w, "\n%s\n", sectionStyle.Render(section)); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range rows {
			if _, err := fmt.Fprintf(tw, "%s\t%.6g\t%s\t%s\n", e.Name, e.Value.Value, e.Value.Unit, e.Note); err != nil {
				return err
			}
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.Comparisons) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("comparison")); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintf(tw, "Quantity\tMeasured\tReference\tFractional error\n"); err != nil {
			return err
		}

		for _, c := range r.Comparisons {
			if _, err := fmt.Fprintf(tw, "%s\t%.6g %s\t%.6g %s\t%+.4f\n",
				c.Name,
				c.Measured.Value, c.Measured.Unit,
				c.Reference.Value, c.Reference.Unit,
				c.FractionalError,
			); err != nil {
				return err
			}
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if p := r.Profile; p != nil {
		if _, err := fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("enclosed mass profile")); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintf(tw, "Radius [%s]\tMass [Msun]\n", p.RadiusUnit); err != nil {
			return err
		}

		for i := range p.Radius {
			if _, err := fmt.Fprintf(tw, "%.6g\t%.6g\n", p.Radius[i], p.Mass[i]); err != nil {
				return err
			}
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.Caveats) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		for _, c := range r.Caveats {
			if _, err := fmt.Fprintln(w, caveatStyle.Render("note: "+c)); err != nil {
				return err
			}
		}
	}

	return nil
}
