package importer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

var errPLYHeader = errors.New("ply: malformed header")

type plyFormat int

const (
	plyASCII plyFormat = iota
	plyBinaryLE
	plyBinaryBE
)

type plyProperty struct {
	name      string
	typ       string // scalar type, or list item type
	countType string // non-empty for list properties
}

type plyElement struct {
	name       string
	count      int
	properties []plyProperty
}

type plyHeader struct {
	format   plyFormat
	elements []plyElement
}

// importPLY reads ASCII and binary PLY vertex/face data into one part.
// Properties other than x, y, z, nx, ny, nz and the face index list are
// skipped.
func importPLY(_ context.Context, src Source, _ Options) ([]Part, error) {
	r := bufio.NewReader(bytes.NewReader(src.Data))
	hdr, err := readPLYHeader(r)
	if err != nil {
		return nil, err
	}

	var geom scene.Geometry
	var normals []mgl32.Vec3
	hasNormals := false

	for _, el := range hdr.elements {
		read := plyRowReader(r, hdr.format)
		for row := 0; row < el.count; row++ {
			switch el.name {
			case "vertex":
				var p, n mgl32.Vec3
				for _, prop := range el.properties {
					if prop.countType != "" {
						if _, err := plyList(read, prop); err != nil {
							return nil, err
						}
						continue
					}
					v, err := read.scalar(prop.typ)
					if err != nil {
						return nil, err
					}
					switch prop.name {
					case "x":
						p[0] = float32(v)
					case "y":
						p[1] = float32(v)
					case "z":
						p[2] = float32(v)
					case "nx":
						n[0], hasNormals = float32(v), true
					case "ny":
						n[1] = float32(v)
					case "nz":
						n[2] = float32(v)
					}
				}
				geom.Positions = append(geom.Positions, p)
				normals = append(normals, n)
			case "face":
				for _, prop := range el.properties {
					if prop.countType == "" {
						if _, err := read.scalar(prop.typ); err != nil {
							return nil, err
						}
						continue
					}
					idx, err := plyList(read, prop)
					if err != nil {
						return nil, err
					}
					if prop.name != "vertex_indices" && prop.name != "vertex_index" {
						continue
					}
					for k := 1; k+1 < len(idx); k++ {
						geom.Indices = append(geom.Indices, uint32(idx[0]), uint32(idx[k]), uint32(idx[k+1]))
					}
				}
			default:
				if err := plySkip(read, el); err != nil {
					return nil, err
				}
			}
		}
		if err := read.endElement(); err != nil {
			return nil, err
		}
	}

	for _, i := range geom.Indices {
		if int(i) >= len(geom.Positions) {
			return nil, fmt.Errorf("ply: face index %d out of range", i)
		}
	}
	if hasNormals {
		geom.Normals = normals
	}
	return []Part{{Geometry: geom}}, nil
}

func readPLYHeader(r *bufio.Reader) (*plyHeader, error) {
	line, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return nil, fmt.Errorf("ply: missing magic")
	}

	hdr := &plyHeader{}
	formatSeen := false
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, errPLYHeader
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return nil, errPLYHeader
			}
			switch fields[1] {
			case "ascii":
				hdr.format = plyASCII
			case "binary_little_endian":
				hdr.format = plyBinaryLE
			case "binary_big_endian":
				hdr.format = plyBinaryBE
			default:
				return nil, fmt.Errorf("ply: unknown format %q", fields[1])
			}
			formatSeen = true
		case "element":
			if len(fields) != 3 {
				return nil, errPLYHeader
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, errPLYHeader
			}
			hdr.elements = append(hdr.elements, plyElement{name: fields[1], count: count})
		case "property":
			if len(hdr.elements) == 0 {
				return nil, errPLYHeader
			}
			el := &hdr.elements[len(hdr.elements)-1]
			switch {
			case len(fields) == 5 && fields[1] == "list":
				el.properties = append(el.properties, plyProperty{name: fields[4], typ: fields[3], countType: fields[2]})
			case len(fields) == 3:
				el.properties = append(el.properties, plyProperty{name: fields[2], typ: fields[1]})
			default:
				return nil, errPLYHeader
			}
		case "end_header":
			if !formatSeen {
				return nil, errPLYHeader
			}
			return hdr, nil
		case "comment", "obj_info":
		default:
			return nil, fmt.Errorf("ply: unexpected header line %q", strings.TrimSpace(line))
		}
	}
}

// maxPLYListLen bounds list lengths read from untrusted files.
const maxPLYListLen = 1 << 16

// plyReader decodes property values in one of the PLY encodings.
type plyReader interface {
	scalar(typ string) (float64, error)
	endElement() error
}

func plyList(r plyReader, prop plyProperty) ([]int64, error) {
	n, err := r.scalar(prop.countType)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > maxPLYListLen {
		return nil, fmt.Errorf("ply: bad list length %v", n)
	}
	out := make([]int64, int(n))
	for i := range out {
		v, err := r.scalar(prop.typ)
		if err != nil {
			return nil, err
		}
		out[i] = int64(v)
	}
	return out, nil
}

// plySkip consumes one row of an element the importer does not use.
func plySkip(r plyReader, el plyElement) error {
	for _, prop := range el.properties {
		var err error
		if prop.countType != "" {
			_, err = plyList(r, prop)
		} else {
			_, err = r.scalar(prop.typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func plyRowReader(r *bufio.Reader, format plyFormat) plyReader {
	switch format {
	case plyBinaryLE:
		return &plyBinary{r: r, order: binary.LittleEndian}
	case plyBinaryBE:
		return &plyBinary{r: r, order: binary.BigEndian}
	default:
		return &plyText{r: r}
	}
}

// plyText reads whitespace-separated tokens line by line.
type plyText struct {
	r      *bufio.Reader
	tokens []string
}

func (p *plyText) next() (string, error) {
	for len(p.tokens) == 0 {
		line, err := p.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("ply: unexpected end of data")
		}
		p.tokens = strings.Fields(line)
	}
	tok := p.tokens[0]
	p.tokens = p.tokens[1:]
	return tok, nil
}

func (p *plyText) scalar(string) (float64, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("ply: bad value %q", tok)
	}
	return v, nil
}

func (p *plyText) endElement() error {
	p.tokens = nil
	return nil
}

// plyBinary reads fixed-width values.
type plyBinary struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func plyTypeSize(typ string) (int, error) {
	switch typ {
	case "char", "uchar", "int8", "uint8":
		return 1, nil
	case "short", "ushort", "int16", "uint16":
		return 2, nil
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4, nil
	case "double", "float64":
		return 8, nil
	default:
		return 0, fmt.Errorf("ply: unknown type %q", typ)
	}
}

func (p *plyBinary) scalar(typ string) (float64, error) {
	size, err := plyTypeSize(typ)
	if err != nil {
		return 0, err
	}
	b := p.buf[:size]
	if _, err := io.ReadFull(p.r, b); err != nil {
		return 0, fmt.Errorf("ply: unexpected end of data")
	}
	switch typ {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(p.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(p.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(p.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(p.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(p.order.Uint32(b))), nil
	default:
		return math.Float64frombits(p.order.Uint64(b)), nil
	}
}

func (p *plyBinary) endElement() error { return nil }
