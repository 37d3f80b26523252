package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/journalkit/journal"
)

var (
	createConfigPath string
	createSize       int64
	createParams     journal.Parameters
	createGeometry   journal.Geometry
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <journal>",
		Short: "Create a journal file with a freshly initialized header",
		Long: `The create command creates a new zero-filled journal file and formats
its header: geometry, parameters, a new journal id and both state slots.
Settings come from flags, from a YAML file given with --config, or both;
flags given explicitly override the file.

Example:
  journalctl create data.jrnl
  journalctl create data.jrnl --size 1048576 --blocks-per-page 128
  journalctl create data.jrnl --config journal.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&createConfigPath, "config", "", "YAML file with size, journal and geometry settings")
	f.Int64Var(&createSize, "size", 0, "File size in bytes (default: header size)")
	p, g := journal.DefaultParameters(), journal.DefaultGeometry()
	f.Uint32Var(&createParams.BlockSize, "block-size", p.BlockSize, "Block size in bytes")
	f.Uint32Var(&createParams.FreeBlockThreshold, "free-block-threshold", p.FreeBlockThreshold,
		"Free block threshold")
	f.Uint32Var(&createParams.BlocksPerPage, "blocks-per-page", p.BlocksPerPage,
		fmt.Sprintf("Blocks per page (at most %d)", journal.MaxBlocksPerPage))
	f.Uint32Var(&createParams.PagesPerSet, "pages-per-set", p.PagesPerSet, "Pages per set")
	f.Uint32Var(&createGeometry.HeaderSize, "header-size", g.HeaderSize, "Header region size in bytes")
	f.Uint32Var(&createGeometry.PageHeaderSize, "page-header-size", g.PageHeaderSize,
		"Page header size in bytes")
	f.Uint32Var(&createGeometry.PageDataSize, "page-data-size", g.PageDataSize, "Page data size in bytes")
	f.Uint32Var(&createGeometry.Alignment, "alignment", g.Alignment, "Record alignment in bytes")
	f.Uint32Var(&createGeometry.UserDataSize, "user-data-size", g.UserDataSize,
		"Size of the caller reserved area")
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := resolveCreateConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return fmt.Errorf("invalid geometry: %w", err)
	}
	size := cfg.Size
	if size == 0 {
		size = int64(cfg.Geometry.HeaderSize)
	}
	if size < int64(cfg.Geometry.HeaderSize) {
		return fmt.Errorf("size %d is smaller than the header size %d", size, cfg.Geometry.HeaderSize)
	}

	printVerbose("Creating journal: %s\n", path)

	f, err := journal.Create(path, size)
	if err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	h := newHeader()
	if err := h.Attach(f.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	h.Init(cfg.Geometry, cfg.Journal)
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync journal: %w", err)
	}

	info, err := h.Info()
	h.Detach()
	if closeErr := f.Close(); closeErr != nil {
		return closeErr
	}
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":   path,
			"size":   size,
			"header": info,
		})
	}

	printInfo("Created journal %s\n", path)
	printInfo("  Journal ID:      %s\n", info.JournalID)
	printInfo("  Size:            %s bytes\n", num(size))
	printInfo("  Header size:     %s bytes\n", num(info.HeaderSize))
	printInfo("  Block size:      %s bytes\n", num(info.BlockSize))
	printInfo("  Blocks per page: %s\n", num(info.BlocksPerPage))
	return nil
}

// resolveCreateConfig layers explicitly set flags over the config file, or
// over the defaults when no file is given.
func resolveCreateConfig(cmd *cobra.Command) (createConfig, error) {
	cfg := defaultCreateConfig()
	if createConfigPath != "" {
		loaded, err := loadCreateConfig(createConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	override := func(name string, dst *uint32, v uint32) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("block-size", &cfg.Journal.BlockSize, createParams.BlockSize)
	override("free-block-threshold", &cfg.Journal.FreeBlockThreshold, createParams.FreeBlockThreshold)
	override("blocks-per-page", &cfg.Journal.BlocksPerPage, createParams.BlocksPerPage)
	override("pages-per-set", &cfg.Journal.PagesPerSet, createParams.PagesPerSet)
	override("header-size", &cfg.Geometry.HeaderSize, createGeometry.HeaderSize)
	override("page-header-size", &cfg.Geometry.PageHeaderSize, createGeometry.PageHeaderSize)
	override("page-data-size", &cfg.Geometry.PageDataSize, createGeometry.PageDataSize)
	override("alignment", &cfg.Geometry.Alignment, createGeometry.Alignment)
	override("user-data-size", &cfg.Geometry.UserDataSize, createGeometry.UserDataSize)
	if flags.Changed("size") {
		cfg.Size = createSize
	}
	return cfg, nil
}
