package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"

	"github.com/joshuapare/journalkit/internal/format"
	"github.com/joshuapare/journalkit/journal"
)

var restoreForce bool

func init() {
	rootCmd.AddCommand(newRestoreCmd())
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <in.xz> <journal>",
		Short: "Write a header snapshot back into a journal",
		Long: `The restore command decompresses a snapshot taken with snapshot and
writes it over the header region of an existing journal. The snapshot must
pass recovery and have the same header size as the journal unless --force
is given.

Example:
  journalctl restore header.xz data.jrnl
  journalctl restore damaged.xz data.jrnl --force`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(args)
		},
	}
	cmd.Flags().BoolVar(&restoreForce, "force", false, "Restore even if the snapshot does not recover or its header size differs")
	return cmd
}

// maxSnapshotSize bounds decompression of untrusted snapshots.
const maxSnapshotSize = 1 << 24

func readSnapshot(path string) ([]byte, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	xr, err := xz.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	data, err := io.ReadAll(io.LimitReader(xr, maxSnapshotSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(data) > maxSnapshotSize {
		return nil, fmt.Errorf("%s: snapshot larger than %d bytes", path, maxSnapshotSize)
	}
	return data, nil
}

func runRestore(args []string) error {
	src, dst := args[0], args[1]

	snap, err := readSnapshot(src)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(snap) < format.MinHeaderSize {
		return fmt.Errorf("snapshot %s: %w", src, journal.ErrImageTooSmall)
	}

	check := newHeader()
	if err := check.Attach(snap); err != nil {
		return err
	}
	if err := check.RecoverTransaction(false); err != nil {
		if !restoreForce {
			return fmt.Errorf("snapshot %s does not recover (use --force to restore anyway): %w", src, err)
		}
		printInfo("Warning: snapshot does not recover: %v\n", err)
	}

	f, err := journal.Open(dst)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dst, err)
	}
	if int64(len(snap)) > f.Size() {
		_ = f.Close()
		return fmt.Errorf("snapshot is %d bytes but %s only has %d", len(snap), dst, f.Size())
	}
	snapHS := format.ReadU32(snap, format.HeaderSizeOffset)
	dstHS := format.ReadU32(f.Bytes(), format.HeaderSizeOffset)
	if snapHS != dstHS {
		if !restoreForce {
			_ = f.Close()
			return fmt.Errorf("snapshot header size %d does not match %s header size %d (use --force to restore anyway)",
				snapHS, dst, dstHS)
		}
		printInfo("Warning: snapshot header size %d does not match %s header size %d\n", snapHS, dst, dstHS)
	}
	copy(f.Bytes(), snap)
	err = errors.Join(f.Sync(), f.Close())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"snapshot":     src,
			"file":         dst,
			"header_bytes": len(snap),
		})
	}
	printInfo("Restored %s header bytes from %s into %s\n", num(len(snap)), src, dst)
	return nil
}
