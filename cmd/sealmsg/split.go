package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/wbrc/sealmsg"
	"github.com/wbrc/sealmsg/keyshare"
)

type splitOptions struct {
	secretFile string
	threshold  int
	shareCount int
}

func newSplitCommand() *cobra.Command {
	var o splitOptions

	cmd := &cobra.Command{
		Use:   "split",
		Short: "split the one-time secret into hexadecimal shares",
		Long: `split prints one share per line. Any <threshold> of the <share count>
shares reconstruct the secret with 'sealmsg combine' or the --shares-file
flag of seal and open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(&o, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&o.secretFile, "secret-file", "k", sealmsg.DefaultSecretPath, "file holding the raw one-time secret")
	cmd.Flags().IntVarP(&o.threshold, "threshold", "t", 0, "threshold - number of shares required to reconstruct the secret")
	cmd.Flags().IntVarP(&o.shareCount, "count", "n", 0, "share count - number of shares to generate")

	return cmd
}

func runSplit(o *splitOptions, w io.Writer) error {
	if o.threshold == 0 {
		return fmt.Errorf("threshold > 0 is required")
	}
	if o.shareCount == 0 {
		return fmt.Errorf("share count > 0 is required")
	}
	if o.threshold > o.shareCount {
		return fmt.Errorf("threshold must be less than or equal to share count")
	}

	key, err := sealmsg.KeyFromFile(o.secretFile)
	if err != nil {
		return fmt.Errorf("unable to get the key: %w", err)
	}
	defer key.Destroy()

	shares, err := keyshare.Split(key, o.threshold, o.shareCount)
	if err != nil {
		return fmt.Errorf("failed to split key: %w", err)
	}

	if err := keyshare.WriteShares(w, shares); err != nil {
		return fmt.Errorf("failed to write shares: %w", err)
	}

	klog.V(1).InfoS("split one-time secret", "threshold", o.threshold, "shares", o.shareCount)
	return nil
}

func newCombineCommand() *cobra.Command {
	var sharesFile string

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "reconstruct the one-time secret from shares and write it to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sharesFile == "" {
				return fmt.Errorf("shares filename is required")
			}

			key, err := keyFromShares(sharesFile)
			if err != nil {
				return fmt.Errorf("failed to combine shares: %w", err)
			}
			defer key.Destroy()

			raw := key.Bytes()
			defer clear(raw)
			if _, err := cmd.OutOrStdout().Write(raw); err != nil {
				return fmt.Errorf("failed to write secret: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&sharesFile, "shares-file", "s", "", "file of hexadecimal key shares")

	return cmd
}

func newCiphersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ciphers",
		Short: "list the available AEADs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range sealmsg.Ciphers() {
				def := ""
				if c.Name == sealmsg.DefaultCipher {
					def = " (default)"
				}
				fmt.Fprintf(tw, "%s\t%s%s\n", c.Name, c.Description, def)
			}
			return tw.Flush()
		},
	}
}
