package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/wbrc/sealmsg"
)

type messageOptions struct {
	keyOptions
	input  string
	limit  int64
	cipher string
}

func (o *messageOptions) addFlags(cmd *cobra.Command, inputUsage string) {
	o.keyOptions.addFlags(cmd)
	cmd.Flags().StringVarP(&o.input, "input", "i", "", inputUsage+" (empty or '-' for stdin)")
	cmd.Flags().Int64Var(&o.limit, "limit", sealmsg.DefaultLimit, "maximum number of bytes to read from the input")
	cmd.Flags().StringVar(&o.cipher, "cipher", sealmsg.DefaultCipher, "AEAD to use, see 'sealmsg ciphers'")
}

func (o *messageOptions) stdin() bool {
	return o.input == "" || o.input == "-"
}

func newSealCommand() *cobra.Command {
	var o messageOptions

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "seal a message and write the sealed message to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeal(&o, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	o.addFlags(cmd, "file to seal")

	return cmd
}

func newOpenCommand() *cobra.Command {
	var o messageOptions

	cmd := &cobra.Command{
		Use:   "open",
		Short: "open a sealed message and write the plaintext to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(&o, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	o.addFlags(cmd, "sealed file to open")

	return cmd
}

func runSeal(o *messageOptions, stdin io.Reader, stdout io.Writer) error {
	key, err := o.loadKey()
	if err != nil {
		return err
	}
	defer key.Destroy()

	s := &sealmsg.Sealer{Cipher: o.cipher}
	if o.stdin() {
		err = s.SealStream(stdin, stdout, o.limit, key)
	} else {
		err = s.SealFile(o.input, key, o.limit, stdout)
	}
	if err != nil {
		return fmt.Errorf("unable to write the sealed message: %w", err)
	}

	klog.V(1).InfoS("sealed message", "input", o.inputName(), "cipher", o.cipher)
	return nil
}

func runOpen(o *messageOptions, stdin io.Reader, stdout io.Writer) error {
	key, err := o.loadKey()
	if err != nil {
		return err
	}
	defer key.Destroy()

	s := &sealmsg.Sealer{Cipher: o.cipher}
	if o.stdin() {
		err = s.OpenStream(stdin, stdout, o.limit, key)
	} else {
		err = s.OpenFile(o.input, key, o.limit, stdout)
	}
	if err != nil {
		return fmt.Errorf("unable to write the opened message: %w", err)
	}

	klog.V(1).InfoS("opened message", "input", o.inputName(), "cipher", o.cipher)
	return nil
}

func (o *messageOptions) inputName() string {
	if o.stdin() {
		return "stdin"
	}
	return o.input
}
