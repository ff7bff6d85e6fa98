package main

import (
	goflag "flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

const envPrefix = "SEALMSG_"

// legacyEnv maps flag names to the variables read by the older
// msg2sealed and sealed2msg tools.
var legacyEnv = map[string]string{
	"input":       "ENV_IN_MSG_FILENAME",
	"secret-file": "ENV_IN_ONE_TIME_SECRET_FILENAME",
}

func newRootCommand() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "sealmsg",
		Short: "seal and open single messages with a one-time secret",
		Long: `sealmsg seals a message with a one-time 256-bit secret using an AEAD and
writes the sealed message (nonce ‖ ciphertext ‖ tag) to stdout, or opens a
sealed message and writes the plaintext to stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("failed to load env file %s: %w", envFile, err)
				}
			}
			return setFlagsFromEnv(envPrefix, cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading SEALMSG_* variables")
	addLogFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newSealCommand(),
		newOpenCommand(),
		newSplitCommand(),
		newCombineCommand(),
		newCiphersCommand(),
	)

	return rootCmd
}

// addLogFlags exposes klog's verbosity flag. The remaining klog flags are
// accepted but hidden.
func addLogFlags(fs *pflag.FlagSet) {
	gfs := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(gfs)

	var tfs pflag.FlagSet
	tfs.AddGoFlagSet(gfs)
	tfs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "v" {
			f.Name = "log-level"
			f.Shorthand = "v"
			f.Usage = "log verbosity. 0=Info, 1=Debug"
			return
		}
		f.Hidden = true
	})
	fs.AddFlagSet(&tfs)
}

// setFlagsFromEnv fills every flag not given on the command line from
// <prefix><FLAG_NAME>, falling back to the legacy variable names.
func setFlagsFromEnv(prefix string, fs *pflag.FlagSet) error {
	set := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) {
		set[f.Name] = true
	})

	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		// ignore flags set from the commandline
		if set[f.Name] || err != nil {
			return
		}

		// remove trailing _ to reduce common errors with the prefix, i.e. people setting it to MY_PROG_
		cleanPrefix := strings.TrimSuffix(prefix, "_")
		name := fmt.Sprintf("%s_%s", cleanPrefix, strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_"))

		e, ok := os.LookupEnv(name)
		if !ok {
			legacy, hasLegacy := legacyEnv[f.Name]
			if !hasLegacy {
				return
			}
			if e, ok = os.LookupEnv(legacy); !ok {
				return
			}
			name = legacy
		}

		if serr := f.Value.Set(e); serr != nil {
			err = fmt.Errorf("invalid value %q in %s: %w", e, name, serr)
			return
		}
		f.Changed = true
		klog.V(1).InfoS("flag set from environment", "flag", f.Name, "variable", name)
	})

	return err
}
