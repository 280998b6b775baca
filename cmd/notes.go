package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/internal/notes"
	"github.com/spiffcs/widgets/internal/tui"
	"github.com/spiffcs/widgets/internal/widget"
)

// NewCmdNotes creates the notes command.
func NewCmdNotes(opts *Options) *cobra.Command {
	var size string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Show the note stored in Budibase",
		Long: `Fetches the note row from the Budibase public API and draws it as a
widget. Credentials are read from the secrets file; run 'widgets notes
set-key' first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			if asJSON {
				client, err := e.notesClient()
				if err != nil {
					return err
				}
				enc := json.NewEncoder(e.out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(client.Fetch(cmd.Context()))
			}
			s, err := e.sizeOrDefault(size)
			if err != nil {
				return err
			}
			return presentNotes(cmd, e, s)
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "Widget size (small, medium, large, ...)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the fetch result as JSON")

	cmd.AddCommand(NewCmdNotesSetKey(opts))

	return cmd
}

// NewCmdNotesSetKey creates the notes set-key subcommand.
func NewCmdNotesSetKey(opts *Options) *cobra.Command {
	var apiKey, appID, tableID string

	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store the Budibase credentials",
		Long: `Stores the API key, app ID and table ID in the secrets file.

Pass all three flags to set them non-interactively; otherwise a form opens
in the terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			if apiKey != "" && appID != "" && tableID != "" {
				return saveNotesKeys(e, apiKey, appID, tableID)
			}
			if !shouldUseTUI(opts) {
				return fmt.Errorf("no terminal available, pass --api-key, --app-id and --table-id")
			}
			return promptNotesKeys(e)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Budibase API key")
	cmd.Flags().StringVar(&appID, "app-id", "", "Budibase app ID")
	cmd.Flags().StringVar(&tableID, "table-id", "", "Budibase table ID")

	return cmd
}

// presentNotes fetches the note and draws it at size.
func presentNotes(cmd *cobra.Command, e *env, size widget.Size) error {
	client, err := e.notesClient()
	if err != nil {
		return err
	}
	r := client.Fetch(cmd.Context())
	return e.surface.Present(e.out, size, notesWidget(r))
}

// notesWidget shows the note, in red when the fetch failed.
func notesWidget(r notes.Result) widget.Widget {
	return widget.Widget{
		Text:   r.Text,
		Error:  !r.Success,
		Footer: "最后更新：" + timeNow().Format("15:04:05"),
	}
}

func saveNotesKeys(e *env, apiKey, appID, tableID string) error {
	client, err := e.notesClient()
	if err != nil {
		return err
	}
	if err := client.SetCredentials(apiKey, appID, tableID); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Credentials saved.")
	return nil
}

func promptNotesKeys(e *env) error {
	values, ok, err := prompt.Form("Set API Key", []tui.Field{
		{Label: "API Key", Secret: true},
		{Label: "App ID"},
		{Label: "Table ID"},
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(e.out, "Cancelled.")
		return nil
	}
	for i, v := range values {
		if v == "" {
			return fmt.Errorf("%s is required", notes.Keys[i])
		}
	}
	return saveNotesKeys(e, values[0], values[1], values[2])
}
