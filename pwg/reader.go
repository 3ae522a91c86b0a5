/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Raster stream reader
 */

package pwg

import (
	"fmt"
	"io"
)

// Reader walks a raster stream: NextPage, then ReadLine up to
// Height times, then NextPage again. Scanlines left unread when
// NextPage is called are skipped.
type Reader struct {
	in     io.Reader
	synced bool
	bpl    int // scanline size of the current page
	lines  int // scanlines of the current page not read yet
}

// NewReader creates a Reader on top of the input stream
func NewReader(r io.Reader) *Reader {
	return &Reader{in: r}
}

// NextPage reads the next page header. The first call checks the
// synchronization word. io.EOF means the document ended cleanly at
// a page boundary; a stream cut anywhere else is reported as an
// unexpected EOF.
func (r *Reader) NextPage() (*PageHeader, error) {
	if !r.synced {
		var sync [4]byte
		if _, err := io.ReadFull(r.in, sync[:]); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%w: stream shorter than the sync word",
				ErrBadSync)
		}

		if string(sync[:]) != SyncWord {
			return nil, fmt.Errorf("%w: %q", ErrBadSync, sync[:])
		}

		r.synced = true
	}

	if r.lines > 0 {
		skip := int64(r.lines) * int64(r.bpl)
		if _, err := io.CopyN(io.Discard, r.in, skip); err != nil {
			return nil, fmt.Errorf("skipping %d unread scanlines: %w",
				r.lines, err)
		}
		r.lines = 0
	}

	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r.in, buf[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("page header: %w", err)
	}

	hdr, err := decodeHeader(buf[:])
	if err != nil {
		return nil, err
	}

	r.bpl = int(hdr.BytesPerLine)
	r.lines = int(hdr.Height)

	return hdr, nil
}

// ReadLine reads one scanline of the current page into buf, whose
// length must equal the page's BytesPerLine. io.EOF means all
// Height scanlines have been read.
func (r *Reader) ReadLine(buf []byte) error {
	if r.lines == 0 {
		return io.EOF
	}

	if len(buf) != r.bpl {
		return fmt.Errorf("%w: buffer is %d bytes, scanline is %d",
			ErrShortLine, len(buf), r.bpl)
	}

	if _, err := io.ReadFull(r.in, buf); err != nil {
		return fmt.Errorf("scanline: %w", err)
	}

	r.lines--

	return nil
}
