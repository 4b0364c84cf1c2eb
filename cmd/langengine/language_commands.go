package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"langengine/internal/api"
	"langengine/internal/ipc"
)

// statusError reports a non-zero setter status as a command failure.
type statusError struct {
	resp api.SetLanguageResponse
}

func (e statusError) Error() string {
	if e.resp.Error != "" {
		return fmt.Sprintf("set language: status %d (%s): %s", e.resp.Status, e.resp.StatusText, e.resp.Error)
	}
	return fmt.Sprintf("set language: status %d (%s)", e.resp.Status, e.resp.StatusText)
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var describe bool
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current language code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openAccess(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			resp, err := session.Access.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("get language: %w", err)
			}
			if jsonOut {
				return writeJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			if describe && resp.Description != "" {
				fmt.Fprintf(out, "%s\t%s\n", resp.Language, resp.Description)
				return nil
			}
			fmt.Fprintln(out, resp.Language)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&describe, "describe", "d", false, "Include the language display name")
	return cmd
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "set <code>",
		Short: "Change the current language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openAccess(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			code := args[0]
			resp, err := session.Access.Set(cmd.Context(), &code)
			if err != nil {
				return fmt.Errorf("set language: %w", err)
			}
			if jsonOut {
				if err := writeJSON(cmd, resp); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				switch {
				case resp.Status != 0:
				case resp.Changed:
					fmt.Fprintf(out, "Language changed: %s -> %s\n", resp.Previous, resp.Language)
				default:
					fmt.Fprintf(out, "Language is %s\n", resp.Language)
				}
			}
			if resp.Status != 0 {
				return statusError{resp: resp}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:         "languages",
		Short:       "List the built-in language table",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			langs := api.KnownLanguages()
			// Prefer the running daemon's table.
			if client, err := ipc.Dial(ctx.socketPath()); err == nil {
				if resp, err := client.Languages(); err == nil && len(resp.Languages) > 0 {
					langs = resp.Languages
				}
				client.Close()
			}
			if jsonOut {
				return writeJSON(cmd, langs)
			}

			rows := make([][]string, 0, len(langs))
			for _, lang := range langs {
				rows = append(rows, []string{lang.ISO2, lang.ISO3, lang.Name, lang.Default})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Code", "ISO 639-2", "Name", "Default"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
