package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/celeru-survey/models"
	"github.com/danielhkuo/celeru-survey/templates"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [type]",
		Short: "List built-in templates or print one as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, s := range templates.Summaries() {
					fmt.Fprintf(out, "%-5s %s\n", s.Type, s.Title)
				}
				return nil
			}

			t := models.SurveyType(strings.ToUpper(args[0]))
			payload, ok := templates.Lookup(t)
			if !ok {
				return fmt.Errorf("unknown template %q", args[0])
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, payload, "", "  "); err != nil {
				return err
			}
			buf.WriteByte('\n')
			_, err := out.Write(buf.Bytes())
			return err
		},
	}
}
