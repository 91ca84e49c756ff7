package cli

import (
	"fmt"
	"io"

	usercfg "github.com/ozacod/nbuild/internal/config"
	"github.com/ozacod/nbuild/internal/pkg/generate"
	"github.com/ozacod/nbuild/internal/pkg/platform"
	"github.com/ozacod/nbuild/internal/pkg/toolchain"
	"github.com/ozacod/nbuild/internal/pkg/utils/colors"
	"github.com/spf13/cobra"
)

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user defaults",
		Long: `Manage the defaults configure uses when a flag is not given.

Keys: platform, buildtype, toolchain, builddir, ninja_version.`,
		Example: `  nbuild config list
  nbuild config set buildtype release
  nbuild config get buildtype
  nbuild config set buildtype ""     # Clear a default`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := usercfg.LoadGlobal()
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a default",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return setConfig(args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print all defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listConfig(cmd.OutOrStdout())
		},
	})

	return cmd
}

func setConfig(key, value string) error {
	if err := validateDefault(key, value); err != nil {
		return err
	}

	cfg, err := usercfg.LoadGlobal()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := usercfg.SaveGlobal(cfg); err != nil {
		return err
	}

	if value == "" {
		PrintSuccess("Cleared %s", key)
	} else {
		PrintSuccess("Set %s = %s", key, value)
	}
	return nil
}

// validateDefault rejects values configure would reject later.
func validateDefault(key, value string) error {
	if value == "" {
		return nil
	}
	var err error
	switch key {
	case "platform":
		_, err = platform.New(value)
	case "buildtype":
		_, err = toolchain.ParseBuildType(value)
	case "toolchain":
		_, err = toolchain.ParseToolchain(value, platform.Platform{})
	case "ninja_version":
		err = generate.ValidateNinjaVersion(value)
	}
	return err
}

func listConfig(w io.Writer) error {
	cfg, err := usercfg.LoadGlobal()
	if err != nil {
		return err
	}
	path, err := usercfg.GetConfigPath()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s# %s%s\n", colors.Dim, path, colors.Reset)
	for _, key := range usercfg.Keys() {
		value, _ := cfg.Get(key)
		if value == "" {
			value = colors.Dim + "(unset)" + colors.Reset
		}
		fmt.Fprintf(w, "%s%-14s%s %s\n", colors.Bold, key, colors.Reset, value)
	}
	return nil
}
