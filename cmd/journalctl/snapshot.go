package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"

	"github.com/joshuapare/journalkit/internal/buf"
	"github.com/joshuapare/journalkit/internal/format"
	"github.com/joshuapare/journalkit/internal/mmfile"
)

func init() {
	rootCmd.AddCommand(newSnapshotCmd())
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <journal> <out.xz>",
		Short: "Save the header region as an xz-compressed snapshot",
		Long: `The snapshot command copies the header region of a journal into an
xz-compressed file, for offline analysis or to put back later with restore.
Damaged headers can be saved too; when the stored header size is unusable
the first 4096 bytes are taken.

Example:
  journalctl snapshot data.jrnl header.xz`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(args)
		},
	}
	return cmd
}

// headerRegion returns the header bytes of a journal image, trusting the
// stored header size only when it fits the image.
func headerRegion(data []byte) []byte {
	n := min(len(data), format.HeaderSize)
	if len(data) >= format.MinHeaderSize {
		hs := int(format.ReadU32(data, format.HeaderSizeOffset))
		if region, ok := buf.Slice(data, 0, hs); ok && hs >= format.MinHeaderSize {
			return region
		}
	}
	return data[:n]
}

func runSnapshot(args []string) error {
	src, dst := args[0], args[1]

	data, unmap, err := mmfile.Map(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	defer unmap()

	region := headerRegion(data)
	if len(region) < format.MinHeaderSize {
		return fmt.Errorf("%s: %d bytes is too small for a journal header", src, len(region))
	}

	printVerbose("Compressing %s header bytes from %s\n", num(len(region)), src)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	xw, err := xz.NewWriter(bw)
	if err != nil {
		_ = out.Close()
		return fmt.Errorf("xz writer: %w", err)
	}
	if _, err := xw.Write(region); err != nil {
		_ = out.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := xw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finish snapshot: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":         src,
			"snapshot":     dst,
			"header_bytes": len(region),
		})
	}
	printInfo("Saved %s header bytes of %s to %s\n", num(len(region)), src, dst)
	return nil
}
