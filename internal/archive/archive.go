// Package archive loads FILT coefficient sections from files on disk, either
// raw section dumps or ELF objects that carry the section.
package archive

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/mhx/filtcoef/pkg/filtsec"
)

// DefaultSection is the ELF section name the embedded toolchain emits
// coefficient records into.
const DefaultSection = ".libemb_filter_coefs"

var (
	ErrNoSection    = errors.New("coefficient section not found")
	ErrFileTooLarge = errors.New("file too large to load")
)

// Options controls how a file is interpreted.
type Options struct {
	// Schema selects the record header layout. Never sniffed from the data.
	Schema filtsec.Schema

	// SectionName is the ELF section to extract. Empty means DefaultSection.
	SectionName string

	// Raw treats the file as bare section bytes even when it starts with an
	// ELF magic.
	Raw bool
}

// Load reads the file at path and decodes the coefficient section it holds.
// ELF inputs have the configured section extracted first unless opts.Raw is
// set. Decoded records copy their data out of the file, so nothing is
// retained once Load returns.
func Load(path string, opts Options) (filtsec.Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		return nil, ErrFileTooLarge
	}
	size := int(size64)
	if size == 0 {
		return FromBytes(nil, opts)
	}

	// Prefer mmap where available; coefficient payloads inside large objects
	// never get read into memory twice that way.
	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		size,
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err == nil {
		sec, decErr := FromBytes(data, opts)
		_ = unix.Munmap(data)
		return sec, decErr
	}

	// Fallback path that does not require mmap support.
	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return FromBytes(data, opts)
}

// FromBytes decodes the coefficient section held in data, extracting the
// configured ELF section first when data is an ELF object and opts.Raw is
// unset.
func FromBytes(data []byte, opts Options) (filtsec.Section, error) {
	if !opts.Raw && isELF(data) {
		payload, err := elfSection(data, opts.sectionName())
		if err != nil {
			return nil, err
		}
		return filtsec.Decode(payload, opts.Schema)
	}
	return filtsec.Decode(data, opts.Schema)
}

func (o Options) sectionName() string {
	if o.SectionName == "" {
		return DefaultSection
	}
	return o.SectionName
}

func isELF(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == elf.ELFMAG
}

func elfSection(data []byte, name string) ([]byte, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse elf: %w", err)
	}
	s := f.Section(name)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSection, name)
	}
	payload, err := s.Data()
	if err != nil {
		return nil, fmt.Errorf("read section %s: %w", name, err)
	}
	return payload, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
