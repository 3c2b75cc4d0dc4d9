package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type wavlApp struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

func newApp() *wavlApp {
	baseCmd, baseConfig := newBaseCmd()
	baseCmd.AddCommand(newStressCmd(baseConfig))
	baseCmd.AddCommand(newDemoCmd(baseConfig))
	return &wavlApp{baseCmd, baseConfig}
}

// Execute runs the command selected by the command line arguments.
func (a *wavlApp) Execute(ctx context.Context) error {
	return a.baseCmd.ExecuteContext(ctx)
}

func newBaseCmd() (*cobra.Command, *baseConfiguration) {
	config := &baseConfiguration{}
	var baseCmd = &cobra.Command{
		Use:           "wavl",
		Short:         "Exercises the weak AVL tree",
		Long:          `wavl stress-tests the weak AVL tree against a reference B-tree and prints small demonstration trees.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(cmd, config); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}
	config.addConfigurationFlags(baseCmd)
	return baseCmd, config
}

func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var errs []error
	if err := config.initializeConfig(cmd); err != nil {
		errs = append(errs, fmt.Errorf("reading configuration: %w", err))
	}
	if err := config.initLogger(cmd.ErrOrStderr()); err != nil {
		errs = append(errs, fmt.Errorf("initializing logger: %w", err))
	}
	return errors.Join(errs...)
}

// initializeConfig reads in config file and ENV variables if set.
func (config *baseConfiguration) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	config.initConfigFileLocation()
	if config.configFileExists() {
		v.SetConfigFile(config.CfgFile)
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine, a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	// --key-range binds to WAVL_KEY_RANGE, see bindFlags
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindFlagErr []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyHome || f.Name == keyConfig {
			return
		}

		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("binding env to flag %q: %w", f.Name, err))
				return
			}
		}

		// config and env values only fill the flags not given on the command line
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, flagValue(v.Get(f.Name))); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("setting flag %q value: %w", f.Name, err))
				return
			}
		}
	})
	return errors.Join(bindFlagErr...)
}

// flagValue formats a config value the way pflag parses it. Lists from the config file
// become comma separated.
func flagValue(val any) string {
	if list, ok := val.([]any); ok {
		s := make([]string, len(list))
		for i, x := range list {
			s[i] = fmt.Sprintf("%v", x)
		}
		return strings.Join(s, ",")
	}
	return fmt.Sprintf("%v", val)
}
