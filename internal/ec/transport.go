package ec

import (
	"fmt"
	"os"
	"sync"
)

// Transport performs single-byte reads and writes against the EC
// register file. Each call is atomic with respect to the hardware;
// read-modify-write sequencing is the Controller's responsibility.
type Transport interface {
	// ReadByte returns the byte stored at the given register address.
	ReadByte(addr uint8) (byte, error)

	// WriteByte stores a byte at the given register address.
	WriteByte(addr uint8, value byte) error
}

// FileTransport accesses the EC register file through the io file
// exposed by the ec_sys kernel module (/sys/kernel/debug/ec/ec0/io).
// The file is byte-addressed: offset N is register N.
//
// Thread Safety: individual calls are safe for concurrent use; pread
// and pwrite carry their own offsets so no seek state is shared.
type FileTransport struct {
	mu   sync.RWMutex
	file *os.File
}

// OpenFile opens the EC io file for reading and writing.
//
// Parameters:
//   - path: Filesystem path to the ec_sys io file
//
// Returns:
//   - *FileTransport: Open transport ready for use
//   - error: If the file cannot be opened (missing ec_sys module,
//     insufficient privileges)
func OpenFile(path string) (*FileTransport, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening EC io file %s: %w", path, err)
	}
	return &FileTransport{file: f}, nil
}

// ReadByte implements Transport.
func (t *FileTransport) ReadByte(addr uint8) (byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.file == nil {
		return 0, ErrClosed
	}

	var buf [1]byte
	if _, err := t.file.ReadAt(buf[:], int64(addr)); err != nil {
		return 0, fmt.Errorf("%w: read 0x%02x: %w", ErrIO, addr, err)
	}
	return buf[0], nil
}

// WriteByte implements Transport.
func (t *FileTransport) WriteByte(addr uint8, value byte) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.file == nil {
		return ErrClosed
	}

	if _, err := t.file.WriteAt([]byte{value}, int64(addr)); err != nil {
		return fmt.Errorf("%w: write 0x%02x: %w", ErrIO, addr, err)
	}
	return nil
}

// Close releases the underlying file. Subsequent calls fail with ErrClosed.
func (t *FileTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	if err != nil {
		return fmt.Errorf("closing EC io file: %w", err)
	}
	return nil
}
