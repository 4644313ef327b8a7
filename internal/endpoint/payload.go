// Package endpoint handles real-time endpoint payload encodings and smoke
// invocation. Endpoint provisioning itself is a control-plane call; what
// lives here is the request-body contract between caller and serving
// container.
package endpoint

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Content types the serving containers accept.
const (
	ContentTypeCSV = "text/csv"
	ContentTypeNPY = "application/x-npy"
)

// EncodeCSV renders rows of features as plain delimited text, one
// observation per line, no header. This matches script-mode containers that
// parse request bodies with a CSV reader.
func EncodeCSV(rows [][]float64) []byte {
	var b bytes.Buffer
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// ParseCSV parses a delimited-text request or response body back into rows
// of floats. Blank lines are skipped.
func ParseCSV(data []byte) ([][]float64, error) {
	var rows [][]float64
	for ln, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, field %d: %w", ln+1, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// npyMagic is the NPY format signature, followed by version 1.0.
var npyMagic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 1, 0}

// EncodeNPY serializes float32 values in NPY format version 1.0, C order,
// little endian. len(values) must equal the product of shape. This is the
// binary array encoding serving containers accept as application/x-npy.
func EncodeNPY(values []float32, shape []int) ([]byte, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension %d", d)
		}
		n *= d
	}
	if n != len(values) {
		return nil, fmt.Errorf("shape %v holds %d values, got %d", shape, n, len(values))
	}

	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	shapeStr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%s), }", shapeStr)

	// Header (including magic, version, and length prefix) pads with
	// spaces to a multiple of 64 and ends in newline.
	preludeLen := len(npyMagic) + 2
	total := preludeLen + len(header) + 1
	if pad := total % 64; pad != 0 {
		header += strings.Repeat(" ", 64-pad)
	}
	header += "\n"

	var b bytes.Buffer
	b.Write(npyMagic)
	if err := binary.Write(&b, binary.LittleEndian, uint16(len(header))); err != nil {
		return nil, err
	}
	b.WriteString(header)
	if err := binary.Write(&b, binary.LittleEndian, values); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// NPYHeader returns the dict header of an NPY payload, for inspection in
// tests and debugging.
func NPYHeader(data []byte) (string, error) {
	if len(data) < len(npyMagic)+2 {
		return "", fmt.Errorf("payload too short for NPY header")
	}
	if !bytes.Equal(data[:len(npyMagic)], npyMagic) {
		return "", fmt.Errorf("bad NPY magic")
	}
	hlen := int(binary.LittleEndian.Uint16(data[len(npyMagic):]))
	start := len(npyMagic) + 2
	if len(data) < start+hlen {
		return "", fmt.Errorf("truncated NPY header")
	}
	return string(data[start : start+hlen]), nil
}
