package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change console preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		snapshot := app.prefs.Snapshot()
		fmt.Printf("dark_mode\t%t\n", snapshot.DarkMode)
		fmt.Printf("sidebar_collapsed\t%t\n", snapshot.SidebarCollapsed)
		return nil
	},
}

var prefsDarkCmd = &cobra.Command{
	Use:   "dark <on|off|toggle>",
	Short: "Change the dark mode preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		switch args[0] {
		case "on":
			app.prefs.SetDarkMode(true)
		case "off":
			app.prefs.SetDarkMode(false)
		case "toggle":
			app.prefs.ToggleDarkMode()
		default:
			return fmt.Errorf("expected on, off or toggle, got %q", args[0])
		}
		fmt.Printf("dark_mode\t%t\n", app.prefs.DarkMode())
		return nil
	},
}

var prefsSidebarCmd = &cobra.Command{
	Use:   "sidebar <collapsed|expanded>",
	Short: "Change the sidebar preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		switch args[0] {
		case "collapsed":
			app.prefs.SetSidebarCollapsed(true)
		case "expanded":
			app.prefs.SetSidebarCollapsed(false)
		default:
			return fmt.Errorf("expected collapsed or expanded, got %q", args[0])
		}
		fmt.Printf("sidebar_collapsed\t%t\n", app.prefs.SidebarCollapsed())
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsDarkCmd)
	prefsCmd.AddCommand(prefsSidebarCmd)
}
