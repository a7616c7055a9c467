package main

import (
	"fmt"
	"os"
	"time"

	"mosaic-go/internal/app"
	"mosaic-go/internal/config"
	"mosaic-go/internal/mosaic"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a MosaicApp. The caller must defer
// app.Close(). operation identifies the CLI command being run.
func newApp(operation string) (*app.MosaicApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewMosaicApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Mosaic vault and canvas persistence tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Data Dir:  %s\n", cfg.DataDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("History:   %s (max %d items)\n", cfg.History.Type, cfg.History.MaxItems)
		fmt.Printf("App State: %s\n", cfg.State.Type)
		return nil
	},
}

// vault command
var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage vaults",
}

var vaultCreateCmd = &cobra.Command{
	Use:   "create PATH NAME",
	Short: "Create a vault with a default canvas",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		a, err := newApp("CreateVault")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.CreateVault(args[0], args[1], description)
		if err != nil {
			return fmt.Errorf("creating vault: %w", err)
		}

		fmt.Printf("Created vault %q (%s) at %s\n", info.Name, info.ID, info.Path)
		return nil
	},
}

var vaultOpenCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open a vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OpenVault")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.OpenVault(args[0])
		if err != nil {
			return fmt.Errorf("opening vault: %w", err)
		}

		fmt.Printf("%s (%s)\n", info.Name, info.ID)
		if info.Description != "" {
			fmt.Printf("  %s\n", info.Description)
		}
		fmt.Printf("  %d canvas(es), updated %s\n", info.CanvasCount, info.UpdatedAt)
		return nil
	},
}

var vaultRenameCmd = &cobra.Command{
	Use:   "rename PATH NEW_NAME",
	Short: "Rename a vault (directory is left in place)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RenameVault")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.RenameVault(args[0], args[1])
		if err != nil {
			return fmt.Errorf("renaming vault: %w", err)
		}

		fmt.Printf("Renamed vault %s to %q\n", info.ID, info.Name)
		return nil
	},
}

var vaultDescribeCmd = &cobra.Command{
	Use:   "describe PATH DESCRIPTION",
	Short: "Update a vault description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateVaultDescription")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.UpdateVaultDescription(args[0], args[1]); err != nil {
			return fmt.Errorf("updating description: %w", err)
		}

		fmt.Println("Description updated")
		return nil
	},
}

var vaultMigrateCmd = &cobra.Command{
	Use:   "migrate PATH",
	Short: "Upgrade a legacy vault metadata file in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MigrateVault")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.MigrateVault(args[0])
		if err != nil {
			return fmt.Errorf("migrating vault: %w", err)
		}

		fmt.Printf("Migrated vault %q (%s)\n", info.Name, info.ID)
		return nil
	},
}

var vaultCanvasesCmd = &cobra.Command{
	Use:   "canvases PATH",
	Short: "List the canvases of a vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListCanvases")
		if err != nil {
			return err
		}
		defer a.Close()

		infos, err := a.ListCanvases(args[0])
		if err != nil {
			return fmt.Errorf("listing canvases: %w", err)
		}

		if len(infos) == 0 {
			fmt.Println("No canvases found.")
			return nil
		}
		for _, c := range infos {
			fmt.Printf("%s  %s  (updated %s)\n", c.ID, c.Name, mosaic.RelativeTime(c.UpdatedAt, time.Now()))
		}
		return nil
	},
}

// canvas command
var canvasCmd = &cobra.Command{
	Use:   "canvas",
	Short: "Manage canvases",
}

var canvasCreateCmd = &cobra.Command{
	Use:   "create VAULT_PATH NAME",
	Short: "Create a canvas inside a vault",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		a, err := newApp("CreateCanvas")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.CreateCanvas(args[0], args[1], description)
		if err != nil {
			return fmt.Errorf("creating canvas: %w", err)
		}

		fmt.Printf("Created canvas %q (%s) at %s\n", info.Name, info.ID, info.Path)
		return nil
	},
}

var canvasOpenCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open a canvas, migrating a legacy layout if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OpenCanvas")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.OpenCanvas(args[0])
		if err != nil {
			return fmt.Errorf("opening canvas: %w", err)
		}

		fmt.Printf("%s (%s) in vault %s\n", info.Name, info.ID, info.VaultID)
		if len(info.Tags) > 0 {
			fmt.Printf("  tags: %v\n", info.Tags)
		}
		return nil
	},
}

var canvasRenameCmd = &cobra.Command{
	Use:   "rename PATH NEW_NAME",
	Short: "Rename a canvas and its folder when possible",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RenameCanvas")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.RenameCanvas(args[0], args[1])
		if err != nil {
			return fmt.Errorf("renaming canvas: %w", err)
		}

		fmt.Printf("Renamed canvas %s to %q (%s)\n", info.ID, info.Name, info.Path)
		return nil
	},
}

var canvasDeleteCmd = &cobra.Command{
	Use:   "delete PATH",
	Short: "Delete a canvas and its history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteCanvas")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteCanvas(args[0]); err != nil {
			return fmt.Errorf("deleting canvas: %w", err)
		}

		fmt.Println("Canvas deleted")
		return nil
	},
}

var canvasTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage canvas tags",
}

var canvasTagSetCmd = &cobra.Command{
	Use:   "set PATH [TAG...]",
	Short: "Replace the tag set of a canvas",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateCanvasTags")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.UpdateCanvasTags(args[0], args[1:])
		if err != nil {
			return fmt.Errorf("updating tags: %w", err)
		}

		fmt.Printf("Tags for %q: %v\n", info.Name, info.Tags)
		return nil
	},
}

var canvasTagAddCmd = &cobra.Command{
	Use:   "add PATH TAG",
	Short: "Add one tag to a canvas",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddCanvasTag")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.AddCanvasTag(args[0], args[1])
		if err != nil {
			return fmt.Errorf("adding tag: %w", err)
		}

		fmt.Printf("Tags for %q: %v\n", info.Name, info.Tags)
		return nil
	},
}

var canvasTagRemoveCmd = &cobra.Command{
	Use:   "remove PATH TAG",
	Short: "Remove one tag from a canvas",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveCanvasTag")
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.RemoveCanvasTag(args[0], args[1])
		if err != nil {
			return fmt.Errorf("removing tag: %w", err)
		}

		fmt.Printf("Tags for %q: %v\n", info.Name, info.Tags)
		return nil
	},
}

var canvasDescribeCmd = &cobra.Command{
	Use:   "describe PATH DESCRIPTION",
	Short: "Update a canvas description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateCanvasDescription")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.UpdateCanvasDescription(args[0], args[1]); err != nil {
			return fmt.Errorf("updating description: %w", err)
		}

		fmt.Println("Description updated")
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recently opened items",
}

var historyVaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "List recently opened vaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("RecentVaults")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.RecentVaults(limit)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No history.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  opened %d time(s), last %s\n",
				e.ID, e.Name, e.OpenCount, mosaic.RelativeTime(e.LastOpened, time.Now()))
		}
		return nil
	},
}

var historyCanvasesCmd = &cobra.Command{
	Use:   "canvases",
	Short: "List recently opened canvases",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		vaultID, _ := cmd.Flags().GetString("vault")

		a, err := newApp("RecentCanvases")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.RecentCanvases(vaultID, limit)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No history.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  opened %d time(s), last %s\n",
				e.ID, e.Name, e.OpenCount, mosaic.RelativeTime(e.LastOpened, time.Now()))
		}
		return nil
	},
}

// state command
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "View app state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last opened vault and canvas",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AppState")
		if err != nil {
			return err
		}
		defer a.Close()

		state, err := a.AppState()
		if err != nil {
			return fmt.Errorf("loading app state: %w", err)
		}

		if state.LastVaultID != nil {
			fmt.Printf("Last vault:  %s\n", *state.LastVaultID)
		} else {
			fmt.Println("Last vault:  (none)")
		}
		if state.LastCanvasID != nil {
			fmt.Printf("Last canvas: %s\n", *state.LastCanvasID)
		} else {
			fmt.Println("Last canvas: (none)")
		}
		fmt.Printf("Updated:     %s\n", state.UpdatedAt)
		return nil
	},
}

func init() {
	vaultCreateCmd.Flags().String("description", "", "vault description")
	canvasCreateCmd.Flags().String("description", "", "canvas description")
	historyVaultsCmd.Flags().Int("limit", 10, "maximum entries to show")
	historyCanvasesCmd.Flags().Int("limit", 10, "maximum entries to show")
	historyCanvasesCmd.Flags().String("vault", "", "filter by owning vault id")

	configCmd.AddCommand(configInitCmd, configListCmd)
	vaultCmd.AddCommand(vaultCreateCmd, vaultOpenCmd, vaultRenameCmd, vaultDescribeCmd, vaultMigrateCmd, vaultCanvasesCmd)
	canvasTagCmd.AddCommand(canvasTagSetCmd, canvasTagAddCmd, canvasTagRemoveCmd)
	canvasCmd.AddCommand(canvasCreateCmd, canvasOpenCmd, canvasRenameCmd, canvasDeleteCmd, canvasTagCmd, canvasDescribeCmd)
	historyCmd.AddCommand(historyVaultsCmd, historyCanvasesCmd)
	stateCmd.AddCommand(stateShowCmd)

	rootCmd.AddCommand(configCmd, vaultCmd, canvasCmd, historyCmd, stateCmd)
}
