package journal

import (
	"fmt"

	"github.com/joshuapare/journalkit/internal/format"
)

// MaxBlocksPerPage is the largest blocks-per-page value Init stores.
// Larger requests are clamped.
const MaxBlocksPerPage = format.MaxBlocksPerPage

// Parameters are the tunables of a journal supplied by its owner.
type Parameters struct {
	BlockSize          uint32 `yaml:"block_size"           json:"block_size"`
	FreeBlockThreshold uint32 `yaml:"free_block_threshold" json:"free_block_threshold"`
	BlocksPerPage      uint32 `yaml:"blocks_per_page"      json:"blocks_per_page"`
	PagesPerSet        uint32 `yaml:"pages_per_set"        json:"pages_per_set"`
}

// DefaultParameters returns the parameters journalctl uses when none are given.
func DefaultParameters() Parameters {
	return Parameters{
		BlockSize:          256,
		FreeBlockThreshold: 32,
		BlocksPerPage:      64,
		PagesPerSet:        16,
	}
}

// Geometry describes the fixed layout of a journal file.
type Geometry struct {
	HeaderSize     uint32 `yaml:"header_size"      json:"header_size"`
	PageHeaderSize uint32 `yaml:"page_header_size" json:"page_header_size"`
	PageDataSize   uint32 `yaml:"page_data_size"   json:"page_data_size"`
	Alignment      uint32 `yaml:"alignment"        json:"alignment"`
	UserDataSize   uint32 `yaml:"user_data_size"   json:"user_data_size"`
}

// DefaultGeometry returns a geometry matching DefaultParameters.
func DefaultGeometry() Geometry {
	p := DefaultParameters()
	return Geometry{
		HeaderSize:     format.HeaderSize,
		PageHeaderSize: 128,
		PageDataSize:   p.BlockSize * p.BlocksPerPage,
		Alignment:      8,
		UserDataSize:   0,
	}
}

// Validate checks that g describes a header region able to hold the fixed
// fields and both state slots.
func (g Geometry) Validate() error {
	if g.HeaderSize < format.MinHeaderSize {
		return fmt.Errorf("header size %d below minimum %d: %w", g.HeaderSize, format.MinHeaderSize, ErrImageTooSmall)
	}
	if g.Alignment != 0 && g.Alignment&(g.Alignment-1) != 0 {
		return fmt.Errorf("alignment %d is not a power of two", g.Alignment)
	}
	return nil
}
