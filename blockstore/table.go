package blockstore

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// TypeLog is the conventional partition type for circular log regions.
const TypeLog = "log"

// PartitionInfo describes one entry of a partition table.
type PartitionInfo struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Offset int64  `yaml:"offset"`
	Size   int64  `yaml:"size"`
}

// Table maps partition names and types to regions of a parent store.
// It plays the role a partition table plays on embedded targets: the
// firmware image carries the layout, and components discover their region
// by name or type instead of hard-coding offsets.
type Table struct {
	Partitions []PartitionInfo `yaml:"partitions"`
}

// ParseTable decodes a partition table from YAML.
//
//	partitions:
//	  - name: eventlog
//	    type: log
//	    offset: 65536
//	    size: 131072
//
// Every offset and size must be a multiple of EraseUnitSize.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("blockstore: failed to parse partition table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTable reads and parses a partition table from r.
func LoadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("blockstore: failed to read partition table: %w", err)
	}
	return ParseTable(data)
}

// LoadTableFile reads and parses a partition table from a file.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is caller-controlled by design
	if err != nil {
		return nil, fmt.Errorf("blockstore: failed to open partition table: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}

func (t *Table) validate() error {
	seen := make(map[string]struct{}, len(t.Partitions))
	for _, p := range t.Partitions {
		if p.Name == "" {
			return fmt.Errorf("blockstore: partition with empty name")
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("blockstore: duplicate partition name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Offset < 0 || p.Offset%EraseUnitSize != 0 || p.Size <= 0 || p.Size%EraseUnitSize != 0 {
			return fmt.Errorf("%w: partition %q offset %d size %d", ErrUnaligned, p.Name, p.Offset, p.Size)
		}
	}
	return nil
}

// Find returns the partition with the given name.
func (t *Table) Find(name string) (PartitionInfo, bool) {
	for _, p := range t.Partitions {
		if p.Name == name {
			return p, true
		}
	}
	return PartitionInfo{}, false
}

// FindFirst returns the first partition of the given type, in table order.
func (t *Table) FindFirst(typ string) (PartitionInfo, bool) {
	for _, p := range t.Partitions {
		if p.Type == typ {
			return p, true
		}
	}
	return PartitionInfo{}, false
}

// Open resolves a partition and returns a windowed view of parent restricted
// to it. If name is empty, the first partition of TypeLog is used.
// Returns ErrPartitionNotFound if no partition matches, and ErrOutOfRange if
// the partition extends past the parent's capacity.
func (t *Table) Open(parent BlockStore, name string) (*Partition, error) {
	var (
		info PartitionInfo
		ok   bool
	)
	if name == "" {
		info, ok = t.FindFirst(TypeLog)
	} else {
		info, ok = t.Find(name)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPartitionNotFound, name)
	}
	if info.Offset+info.Size > parent.Capacity() {
		return nil, fmt.Errorf("%w: partition %q ends at %d, parent capacity %d",
			ErrOutOfRange, info.Name, info.Offset+info.Size, parent.Capacity())
	}
	return &Partition{parent: parent, info: info}, nil
}

// Partition is a BlockStore view over a sub-range of a parent store.
// All offsets are relative to the partition start.
type Partition struct {
	parent BlockStore
	info   PartitionInfo
}

// Name returns the partition name from the table.
func (p *Partition) Name() string { return p.info.Name }

// Type returns the partition type from the table.
func (p *Partition) Type() string { return p.info.Type }

// ReadAt fills buf with the bytes stored at off within the partition.
func (p *Partition) ReadAt(buf []byte, off int64) error {
	if err := checkRange(p.info.Size, off, len(buf)); err != nil {
		return err
	}
	return p.parent.ReadAt(buf, p.info.Offset+off)
}

// WriteAt programs buf at off within the partition.
func (p *Partition) WriteAt(buf []byte, off int64) error {
	if err := checkRange(p.info.Size, off, len(buf)); err != nil {
		return err
	}
	return p.parent.WriteAt(buf, p.info.Offset+off)
}

// Erase resets length bytes at off within the partition.
func (p *Partition) Erase(off, length int64) error {
	if err := checkErase(p.info.Size, off, length); err != nil {
		return err
	}
	return p.parent.Erase(p.info.Offset+off, length)
}

// Capacity returns the partition size in bytes.
func (p *Partition) Capacity() int64 {
	return p.info.Size
}
