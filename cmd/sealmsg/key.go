package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/wbrc/sealmsg"
	"github.com/wbrc/sealmsg/keyshare"
)

type keyOptions struct {
	secretFile string
	sharesFile string
}

func (o *keyOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.secretFile, "secret-file", "k", sealmsg.DefaultSecretPath, "file holding the raw one-time secret")
	cmd.Flags().StringVarP(&o.sharesFile, "shares-file", "s", "", "file of hexadecimal key shares to use instead of the secret file")
}

// loadKey reads the one-time secret, from shares when a shares file is set.
func (o *keyOptions) loadKey() (sealmsg.SymmetricKey, error) {
	if o.sharesFile != "" {
		key, err := keyFromShares(o.sharesFile)
		if err != nil {
			return sealmsg.SymmetricKey{}, fmt.Errorf("unable to get the key: %w", err)
		}
		klog.V(1).InfoS("loaded one-time secret", "shares", o.sharesFile)
		return key, nil
	}

	key, err := sealmsg.KeyFromFile(o.secretFile)
	if err != nil {
		return sealmsg.SymmetricKey{}, fmt.Errorf("unable to get the key: %w", err)
	}
	klog.V(1).InfoS("loaded one-time secret", "file", o.secretFile)
	return key, nil
}

// sharesFileLimit bounds a shares file: the most shares a key can be split
// into, each a 68 character hex line.
const sharesFileLimit = 65535 * (2*(2+sealmsg.KeySize) + 2)

func keyFromShares(path string) (sealmsg.SymmetricKey, error) {
	b, err := sealmsg.ReadFileBounded(path, sharesFileLimit+1)
	if err != nil {
		return sealmsg.SymmetricKey{}, fmt.Errorf("failed to read shares file: %w", err)
	}
	defer clear(b)
	if len(b) > sharesFileLimit {
		return sealmsg.SymmetricKey{}, fmt.Errorf("shares file %s: %w: more than %d bytes", path, sealmsg.ErrInputTooLarge, sharesFileLimit)
	}

	shares, err := keyshare.ReadShares(bytes.NewReader(b))
	if err != nil {
		return sealmsg.SymmetricKey{}, fmt.Errorf("shares file %s: %w", path, err)
	}

	return keyshare.Combine(shares)
}
