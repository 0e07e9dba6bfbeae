package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"debuggee/internal/config"
	"debuggee/internal/testcase"
)

func listTestcases(w io.Writer, format config.ListFormat) error {
	catalog := testcase.Catalog()

	switch format {
	case config.ListFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(catalog)
	case config.ListFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(catalog); err != nil {
			return err
		}
		return encoder.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTERMINATES\tDESCRIPTION")
		for _, tc := range catalog {
			fmt.Fprintf(tw, "%s\t%t\t%s\n", tc.Name, tc.Terminates, tc.Description)
		}
		return tw.Flush()
	}
}
