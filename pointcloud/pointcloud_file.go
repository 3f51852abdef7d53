// Package pointcloud reads and writes point files that can be loaded into an octree.
package pointcloud

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/tinjuiho/tcnj-coctree/octree"
)

// pointValueDataTag encodes if the point has value data.
const pointValueDataTag = "rc|pv"

// ReadFile returns the points stored in the given file. The format is picked from the extension:
// ".las" for LAS files and ".xyz" or ".txt" for whitespace separated text.
func ReadFile(fn string, logger golog.Logger) ([]octree.Point, error) {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".las":
		return ReadLASFile(fn, logger)
	case ".xyz", ".txt":
		f, err := os.Open(filepath.Clean(fn))
		if err != nil {
			return nil, err
		}
		defer utils.UncheckedErrorFunc(f.Close)
		return ReadXYZ(f, logger)
	default:
		return nil, errors.Errorf("do not know how to read file %q", fn)
	}
}

// ReadXYZ parses one point per line as "x y z [value]". Blank lines and lines starting with '#' are
// skipped. The optional fourth column becomes the point's value as a string.
func ReadXYZ(r io.Reader, logger golog.Logger) ([]octree.Point, error) {
	var points []octree.Point
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, errors.Errorf("line %d: expected at least 3 coordinates, got %d", lineNum, len(fields))
		}
		var coords [3]float64
		for i := range coords {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad coordinate %q", lineNum, fields[i])
			}
			coords[i] = v
		}
		pt := octree.Point{P: r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}}
		if len(fields) > 3 {
			pt.Value = strings.Join(fields[3:], " ")
		}
		points = append(points, pt)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	logger.Debugw("read xyz points", "count", len(points))
	return points, nil
}

// ReadLASFile returns the points of a LAS file. Integer values written by WriteLASFile are restored;
// otherwise points carry no value.
func ReadLASFile(fn string, logger golog.Logger) ([]octree.Point, error) {
	lf, err := lidario.NewLasFile(fn, "r")
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(lf.Close)

	var valueData []byte
	for _, d := range lf.VlrData {
		if d.Description == pointValueDataTag {
			valueData = d.BinaryData
			break
		}
	}
	if valueData != nil && len(valueData) < lf.Header.NumberPoints*8 {
		logger.Warnw("ignoring truncated point value data", "points", lf.Header.NumberPoints, "bytes", len(valueData))
		valueData = nil
	}

	points := make([]octree.Point, 0, lf.Header.NumberPoints)
	for i := 0; i < lf.Header.NumberPoints; i++ {
		p, err := lf.LasPoint(i)
		if err != nil {
			return nil, err
		}
		data := p.PointData()
		pt := octree.Point{P: r3.Vector{X: data.X, Y: data.Y, Z: data.Z}}
		if valueData != nil {
			pt.Value = int(binary.LittleEndian.Uint64(valueData[i*8 : (i*8)+8]))
		}
		points = append(points, pt)
	}
	logger.Debugw("read las points", "file", fn, "count", len(points))
	return points, nil
}

// WriteLASFile writes the points out to a LAS file. When every point carries an int value, the values
// are kept in a variable length record so that ReadLASFile can restore them.
func WriteLASFile(points []octree.Point, fn string) (err error) {
	lf, err := lidario.NewLasFile(fn, "w")
	if err != nil {
		return
	}
	defer func() {
		cerr := lf.Close()
		err = multierr.Combine(err, cerr)
	}()

	if err = lf.AddHeader(lidario.LasHeader{PointFormatID: 0}); err != nil {
		return
	}

	hasValue := len(points) > 0
	for _, pt := range points {
		if _, ok := pt.Value.(int); !ok {
			hasValue = false
			break
		}
	}

	var buf bytes.Buffer
	for _, pt := range points {
		pr0 := &lidario.PointRecord0{
			X: pt.P.X,
			Y: pt.P.Y,
			Z: pt.P.Z,
			BitField: lidario.PointBitField{
				Value: (1) | (1 << 3) | (0 << 6) | (0 << 7),
			},
			ClassBitField: lidario.ClassificationBitField{
				Value: 0,
			},
			PointSourceID: 1,
		}
		if err = lf.AddLasPoint(pr0); err != nil {
			return
		}
		if hasValue {
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, uint64(pt.Value.(int)))
			buf.Write(b)
		}
	}

	if hasValue {
		if err = lf.AddVLR(lidario.VLR{
			UserID:                  "",
			Description:             pointValueDataTag,
			BinaryData:              buf.Bytes(),
			RecordLengthAfterHeader: buf.Len(),
		}); err != nil {
			return
		}
	}
	return
}

// WriteXYZ writes the points in the format read by ReadXYZ. Values are printed with %v.
func WriteXYZ(points []octree.Point, out io.Writer) error {
	w := bufio.NewWriter(out)
	for _, pt := range points {
		var err error
		if pt.Value == nil {
			_, err = fmt.Fprintf(w, "%v %v %v\n", pt.P.X, pt.P.Y, pt.P.Z)
		} else {
			_, err = fmt.Fprintf(w, "%v %v %v %v\n", pt.P.X, pt.P.Y, pt.P.Z, pt.Value)
		}
		if err != nil {
			return err
		}
	}
	return w.Flush()
}
