package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ezrec/asmkit/isa/toy"
	"github.com/ezrec/asmkit/script"
)

// app is the state shared by the subcommands.
type app struct {
	root    *cobra.Command
	config  *viper.Viper
	cfgFile string
	logger  *slog.Logger
	closer  func() error
}

// newApp builds the command tree.
func newApp() (a *app) {
	a = &app{config: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "asmkit",
		Short: "Assembler for user defined instruction sets",
		Long: `asmkit assembles line oriented assembly source into 64-bit machine words.

The instruction set is described by a Starlark script (--isa); without one the
built-in toy instruction set is used.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.asmkit.yaml)")
	flags.String("isa", "", "instruction set script")
	flags.BoolP("verbose", "v", false, "verbose logging")
	flags.String("log-file", "", "also write JSON logs to this file")

	for _, name := range []string{"isa", "verbose", "log-file"} {
		cobra.CheckErr(a.config.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(a.assembleCmd(), a.isaCmd(), a.tokensCmd())

	a.root = rootCmd
	return
}

// Execute runs the command line, then restores the logging defaults
// whether or not the command failed.
func (a *app) Execute() (err error) {
	err = a.root.Execute()

	cerr := a.teardown()
	if err == nil {
		err = cerr
	}

	return
}

// setup reads the configuration, and starts logging.
func (a *app) setup(cmd *cobra.Command, args []string) (err error) {
	if a.cfgFile != "" {
		a.config.SetConfigFile(a.cfgFile)
	} else {
		home, herr := os.UserHomeDir()
		if herr == nil {
			a.config.AddConfigPath(home)
		}
		a.config.AddConfigPath(".")
		a.config.SetConfigType("yaml")
		a.config.SetConfigName(".asmkit")
	}

	a.config.SetEnvPrefix("ASMKIT")
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()

	err = a.config.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	a.logger, a.closer, err = newLogger(cmd.ErrOrStderr(), a.config.GetBool("verbose"), a.config.GetString("log-file"))
	if err != nil {
		return
	}

	if used := a.config.ConfigFileUsed(); used != "" {
		a.logger.Debug("config", "file", used)
	}

	return
}

// teardown restores the logging defaults, and closes the log file.
func (a *app) teardown() (err error) {
	if a.closer == nil {
		return
	}

	err = a.closer()
	a.closer = nil
	return
}

// loadIsa loads the configured instruction set.
func (a *app) loadIsa() (isa *script.Isa, err error) {
	path := a.config.GetString("isa")
	if path == "" {
		a.logger.Debug("isa", "name", "toy", "cpu", toy.DefaultSpec.String())
		isa = &script.Isa{InstructionSet: toy.New(toy.DefaultSpec)}
		return
	}

	ld := &script.Loader{Verbose: a.config.GetBool("verbose")}
	isa, err = ld.LoadFile(path)
	if err != nil {
		return
	}

	a.logger.Debug("isa", "file", path, "cpu", isa.Spec().String(), "instructions", isa.Len())

	return
}
