// sealmsg seals a message with a one-time secret, or opens a sealed message,
// and writes the result to stdout.
//
// Usage:
// sealmsg seal [-i <input>] [-k <secret file> | -s <shares file>] [--limit <bytes>] [--cipher <name>]
// sealmsg open [-i <input>] [-k <secret file> | -s <shares file>] [--limit <bytes>] [--cipher <name>]
// sealmsg split [-k <secret file>] -t <threshold> -n <share count>
// sealmsg combine -s <shares file>
// sealmsg ciphers
//
// The <input> file is optional and, if omitted (or set to '-'), defaults to
// stdin. At most --limit bytes are read; longer input is rejected. The
// secret file holds exactly 32 raw bytes and defaults to
// /run/secrets/key1time. Instead of a secret file, a file of hexadecimal
// shares (one per line, as printed by split) can be given with -s.
//
// A sealed message is nonce (12 bytes) ‖ ciphertext ‖ tag (16 bytes). Nothing
// is written to stdout when sealing or opening fails.
//
// Every flag can also be set through the environment as SEALMSG_<FLAG>, for
// example SEALMSG_SECRET_FILE. ENV_IN_MSG_FILENAME and
// ENV_IN_ONE_TIME_SECRET_FILENAME are accepted for --input and --secret-file.
// Flags given on the command line take precedence. --env-file loads
// variables from a dotenv file first.
//
// Example:
// Seal 'note.txt' with the default secret and open it again:
//
// > sealmsg seal -i note.txt > note.sealed
// > sealmsg open < note.sealed
package main
