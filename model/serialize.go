package model

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/google/uuid"
)

const (
	Magic   = 0x5749434B // "WICK"
	Version = 1
)

var (
	ErrBadMagic           = errors.New("model: not a wick result file")
	ErrUnsupportedVersion = errors.New("model: unsupported result version")
	ErrChecksum           = errors.New("model: checksum mismatch")
)

// Serialize writes the Result in the binary .wres format:
//
//	[magic u32][version u16][id 16B][name][mode][statistics][count u32]
//	count × [coeff f64][ndeltas u16][ndeltas × (index, index)][nops u16][nops × (index, create u8)]
//	[crc32 u32 of everything before]
//
// Strings are u16 length-prefixed and an index is (name, space, vacuum).
// All integers are little-endian.
func (r *Result) Serialize() ([]byte, error) {
	w := &writer{buf: &bytes.Buffer{}}

	w.put(uint32(Magic))
	w.put(uint16(Version))
	w.put(r.ID)
	w.str(r.Name)
	w.str(r.Mode)
	w.str(r.Statistics)
	w.put(uint32(len(r.Terms)))

	for _, t := range r.Terms {
		w.put(math.Float64bits(t.Coeff))
		w.count(len(t.Deltas))
		for _, d := range t.Deltas {
			w.index(d.A)
			w.index(d.B)
		}
		w.count(len(t.Operators))
		for _, op := range t.Operators {
			w.index(op.Index)
			var create uint8
			if op.Create {
				create = 1
			}
			w.put(create)
		}
	}
	if w.err != nil {
		return nil, w.err
	}

	w.put(crc32.ChecksumIEEE(w.buf.Bytes()))
	return w.buf.Bytes(), w.err
}

// Deserialize reads a Result written by Serialize.
func Deserialize(data []byte) (*Result, error) {
	if len(data) < 4 {
		return nil, ErrBadMagic
	}
	rd := &reader{r: bytes.NewReader(data)}

	var magic uint32
	rd.get(&magic)
	if rd.err == nil && magic != Magic {
		return nil, fmt.Errorf("%w: magic %#x", ErrBadMagic, magic)
	}
	var version uint16
	rd.get(&version)
	if rd.err == nil && version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if rd.err != nil {
		return nil, rd.err
	}

	body := data[:len(data)-4]
	if len(data) < 10 || crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(data[len(data)-4:]) {
		return nil, ErrChecksum
	}

	r := &Result{}
	var id uuid.UUID
	rd.get(&id)
	r.ID = id
	r.Name = rd.str()
	r.Mode = rd.str()
	r.Statistics = rd.str()

	var n uint32
	rd.get(&n)
	if rd.err != nil {
		return nil, rd.err
	}
	// Every term takes at least 12 bytes, which bounds a corrupt count.
	if int64(n)*12 > int64(rd.r.Len()) {
		return nil, fmt.Errorf("model: term count %d exceeds data", n)
	}

	r.Terms = make([]TermRecord, n)
	for i := range r.Terms {
		t := &r.Terms[i]
		var bits uint64
		rd.get(&bits)
		t.Coeff = math.Float64frombits(bits)

		for range rd.count() {
			t.Deltas = append(t.Deltas, DeltaRecord{A: rd.index(), B: rd.index()})
		}
		for range rd.count() {
			op := OperatorRecord{Index: rd.index()}
			var create uint8
			rd.get(&create)
			op.Create = create == 1
			t.Operators = append(t.Operators, op)
		}
		if rd.err != nil {
			return nil, fmt.Errorf("model: term %d: %w", i, rd.err)
		}
	}

	if rd.r.Len() != 4 {
		return nil, fmt.Errorf("model: %d trailing bytes", rd.r.Len()-4)
	}
	return r, nil
}

// WriteFile serializes r to path.
func WriteFile(path string, r *Result) error {
	data, err := r.Serialize()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a Result from path.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// writer keeps the first error so callers check once.
type writer struct {
	buf *bytes.Buffer
	err error
}

func (w *writer) put(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(w.buf, binary.LittleEndian, v)
}

func (w *writer) count(n int) {
	if n > math.MaxUint16 {
		if w.err == nil {
			w.err = fmt.Errorf("model: %d entries exceed the format limit", n)
		}
		return
	}
	w.put(uint16(n))
}

func (w *writer) str(s string) {
	w.count(len(s))
	if w.err == nil {
		w.buf.WriteString(s)
	}
}

func (w *writer) index(ir IndexRecord) {
	w.str(ir.Name)
	w.str(ir.Space)
	w.str(ir.Vacuum)
}

type reader struct {
	r   *bytes.Reader
	err error
}

func (rd *reader) get(v any) {
	if rd.err != nil {
		return
	}
	if err := binary.Read(rd.r, binary.LittleEndian, v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		rd.err = err
	}
}

func (rd *reader) count() int {
	var n uint16
	rd.get(&n)
	if rd.err != nil {
		return 0
	}
	return int(n)
}

func (rd *reader) str() string {
	n := rd.count()
	if rd.err != nil || n == 0 {
		return ""
	}
	if n > rd.r.Len() {
		rd.err = io.ErrUnexpectedEOF
		return ""
	}
	b := make([]byte, n)
	_, rd.err = io.ReadFull(rd.r, b)
	return string(b)
}

func (rd *reader) index() IndexRecord {
	return IndexRecord{Name: rd.str(), Space: rd.str(), Vacuum: rd.str()}
}
