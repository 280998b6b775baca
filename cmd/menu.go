package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/config"
	"github.com/spiffcs/widgets/internal/update"
	"github.com/spiffcs/widgets/internal/widget"
)

// menu actions
const (
	actionPreview = iota
	actionEdit
	actionUpdate
	actionExit
)

// NewCmdMenu creates the menu command.
func NewCmdMenu(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:       "menu [days|notes]",
		Short:     "Open the interactive menu for a widget",
		Long:      `Opens the widget menu: preview at a size, edit its data or keys, update its script.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"days", "notes"},
		RunE: func(cmd *cobra.Command, args []string) error {
			script := config.ScriptDays
			if len(args) == 1 {
				switch args[0] {
				case "days":
				case "notes":
					script = config.ScriptNotes
				default:
					return fmt.Errorf("unknown widget %q (use days or notes)", args[0])
				}
			}
			return runMenu(cmd, opts, script)
		},
	}
}

// menuItems returns the entries offered for a script's menu.
func menuItems(script string) []string {
	second := "Edit config"
	if script == config.ScriptNotes {
		second = "Set API Key"
	}
	return []string{"Preview", second, "Update code", "Exit"}
}

func runMenu(cmd *cobra.Command, opts *Options, script string) error {
	if !shouldUseTUI(opts) {
		return fmt.Errorf("the menu needs a terminal, use a subcommand instead (see 'widgets --help')")
	}
	e, err := newEnv(cmd, opts)
	if err != nil {
		return err
	}

	choice, err := prompt.Menu(script, menuItems(script))
	if err != nil {
		return err
	}

	switch choice {
	case actionPreview:
		size, ok, err := chooseSize()
		if err != nil || !ok {
			return err
		}
		if script == config.ScriptNotes {
			return presentNotes(cmd, e, size)
		}
		return presentDays(e, size)

	case actionEdit:
		if script == config.ScriptNotes {
			return promptNotesKeys(e)
		}
		return editDays(e)

	case actionUpdate:
		scripts, err := update.Lookup(e.cfg.GetScripts(), []string{script})
		if err != nil {
			return err
		}
		return runUpdate(cmd.Context(), opts, e, scripts)
	}

	// Exit or dismissed
	return nil
}

// chooseSize asks for one of the home screen sizes.
func chooseSize() (widget.Size, bool, error) {
	labels := make([]string, len(widget.HomeSizes))
	for i, s := range widget.HomeSizes {
		labels[i] = s.Label()
	}
	i, err := prompt.Menu("Preview size", labels)
	if err != nil || i < 0 || i >= len(widget.HomeSizes) {
		return 0, false, err
	}
	return widget.HomeSizes[i], true, nil
}
