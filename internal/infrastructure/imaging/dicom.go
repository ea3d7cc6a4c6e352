package imaging

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cocosip/go-dicom/pkg/dicom/dataset"
	"github.com/cocosip/go-dicom/pkg/dicom/element"
	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

// dicomSlice один кадр серии с геометрией и значениями после rescale.
type dicomSlice struct {
	file        string
	frame       int
	rows, cols  int
	position    [3]float64 // ImagePositionPatient
	hasPosition bool
	instance    int
	spacing     []float64 // PixelSpacing: строки, столбцы
	between     float64   // SpacingBetweenSlices или SliceThickness
	pixels      []float64
}

// DICOMSeriesLoader читает серию DICOM из каталога или один (в т.ч. многокадровый) файл.
type DICOMSeriesLoader struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// NewDICOMSeriesLoader создаёт загрузчик. fs должна работать с путями ОС,
// так как файлы разбираются парсером по пути.
func NewDICOMSeriesLoader(fs billy.Filesystem, logger *zap.Logger) *DICOMSeriesLoader {
	return &DICOMSeriesLoader{fs: fs, logger: logger}
}

// Load собирает объём из всех видимых файлов path.
func (l *DICOMSeriesLoader) Load(ctx context.Context, path string) (*entity.Volume, error) {
	files, err := seriesFiles(l.fs, path)
	if err != nil {
		return nil, err
	}

	var slices []dicomSlice
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := readDICOMFile(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", entity.ErrImageLoad, file, err)
		}
		slices = append(slices, s...)
	}

	vol, err := assembleVolume(slices)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrImageLoad, path, err)
	}

	l.logger.Debug("dicom series loaded",
		zap.String("path", path),
		zap.Int("files", len(files)),
		zap.Int("size_x", vol.SizeX),
		zap.Int("size_y", vol.SizeY),
		zap.Int("size_z", vol.SizeZ),
	)
	return vol, nil
}

// readDICOMFile разбирает файл и возвращает его кадры.
func readDICOMFile(path string) ([]dicomSlice, error) {
	res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	ds := res.Dataset
	if res.TransferSyntax.IsEncapsulated() {
		tr := codec.NewTranscoder(res.TransferSyntax, transfer.ExplicitVRLittleEndian)
		native, err := tr.Transcode(ds)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", res.TransferSyntax.UID().UID(), err)
		}
		ds = native
	}

	rows := int(uint16Or(ds, tag.Rows, 0))
	cols := int(uint16Or(ds, tag.Columns, 0))
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("missing image dimensions")
	}
	if samples := uint16Or(ds, tag.SamplesPerPixel, 1); samples != 1 {
		return nil, fmt.Errorf("expected single-sample pixels, got %d samples per pixel", samples)
	}
	bits := int(uint16Or(ds, tag.BitsAllocated, 16))
	signed := uint16Or(ds, tag.PixelRepresentation, 0) != 0

	pd, ok := ds.Get(tag.PixelData)
	if !ok {
		return nil, fmt.Errorf("no pixel data")
	}
	var raw []byte
	switch v := pd.(type) {
	case *element.OtherByte:
		raw = v.GetData()
	case *element.OtherWord:
		raw = v.GetData()
	default:
		return nil, fmt.Errorf("unexpected pixel data type %T", pd)
	}

	values, err := decodeSamples(raw, bits, signed)
	if err != nil {
		return nil, err
	}

	slope := firstOr(parseDecimals(ds.GetString(tag.RescaleSlope)), 1)
	intercept := firstOr(parseDecimals(ds.GetString(tag.RescaleIntercept)), 0)
	frames := 1
	if v, ok := ds.GetString(tag.NumberOfFrames); ok {
		frames = atoiOr(v, 1)
	}
	frameLen := rows * cols
	if len(values) < frames*frameLen {
		return nil, fmt.Errorf("pixel data holds %d samples, want %d", len(values), frames*frameLen)
	}

	thickness := firstOr(parseDecimals(ds.GetString(tag.SliceThickness)), 0)
	base := dicomSlice{
		file:    path,
		rows:    rows,
		cols:    cols,
		spacing: parseDecimals(ds.GetString(tag.PixelSpacing)),
		between: firstOr(parseDecimals(ds.GetString(tag.SpacingBetweenSlices)), thickness),
	}
	if v, ok := ds.GetString(tag.InstanceNumber); ok {
		base.instance = atoiOr(v, 0)
	}
	if pos := parseDecimals(ds.GetString(tag.ImagePositionPatient)); len(pos) == 3 {
		base.position = [3]float64{pos[0], pos[1], pos[2]}
		base.hasPosition = true
	}

	out := make([]dicomSlice, frames)
	for f := range out {
		s := base
		s.frame = f
		s.pixels = make([]float64, frameLen)
		for i, v := range values[f*frameLen : (f+1)*frameLen] {
			s.pixels[i] = v*slope + intercept
		}
		out[f] = s
	}
	return out, nil
}

// uint16Or первое значение US-элемента или def, если элемента нет.
func uint16Or(ds *dataset.Dataset, t *tag.Tag, def uint16) uint16 {
	v, err := ds.GetUInt16(t, 0)
	if err != nil {
		return def
	}
	return v
}

// decodeSamples переводит little-endian выборки в числа.
func decodeSamples(raw []byte, bitsAllocated int, signed bool) ([]float64, error) {
	switch bitsAllocated {
	case 8:
		out := make([]float64, len(raw))
		for i, b := range raw {
			if signed {
				out[i] = float64(int8(b))
			} else {
				out[i] = float64(b)
			}
		}
		return out, nil
	case 16:
		out := make([]float64, len(raw)/2)
		for i := range out {
			u := binary.LittleEndian.Uint16(raw[2*i:])
			if signed {
				out[i] = float64(int16(u))
			} else {
				out[i] = float64(u)
			}
		}
		return out, nil
	case 32:
		out := make([]float64, len(raw)/4)
		for i := range out {
			u := binary.LittleEndian.Uint32(raw[4*i:])
			if signed {
				out[i] = float64(int32(u))
			} else {
				out[i] = float64(u)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported bits allocated: %d", bitsAllocated)
	}
}

// parseDecimals разбирает многозначную строку DS ("0.5\0.5").
func parseDecimals(s string, ok bool) []float64 {
	if !ok {
		return nil
	}
	var out []float64
	for _, part := range strings.Split(s, `\`) {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func firstOr(values []float64, def float64) float64 {
	if len(values) == 0 {
		return def
	}
	return values[0]
}

// assembleVolume упорядочивает кадры и складывает их в объём.
func assembleVolume(slices []dicomSlice) (*entity.Volume, error) {
	if len(slices) == 0 {
		return nil, fmt.Errorf("no slices")
	}

	rows, cols := slices[0].rows, slices[0].cols
	withPosition, withInstance := true, true
	for _, s := range slices {
		if s.rows != rows || s.cols != cols {
			return nil, fmt.Errorf("slice %s is %dx%d, expected %dx%d", s.file, s.cols, s.rows, cols, rows)
		}
		withPosition = withPosition && s.hasPosition
		withInstance = withInstance && s.instance > 0
	}

	switch {
	case withPosition:
		sort.SliceStable(slices, func(i, j int) bool {
			if slices[i].position[2] != slices[j].position[2] {
				return slices[i].position[2] < slices[j].position[2]
			}
			return slices[i].frame < slices[j].frame
		})
	case withInstance:
		sort.SliceStable(slices, func(i, j int) bool {
			if slices[i].instance != slices[j].instance {
				return slices[i].instance < slices[j].instance
			}
			return slices[i].frame < slices[j].frame
		})
	}

	vol := entity.NewVolume(cols, rows, len(slices), sliceSpacing(slices, withPosition))
	frameLen := rows * cols
	for z, s := range slices {
		copy(vol.Data[z*frameLen:(z+1)*frameLen], s.pixels)
	}
	return vol, nil
}

// sliceSpacing шаг по x, y из PixelSpacing и по z из позиций срезов.
// Без PixelSpacing геометрия считается неизвестной.
func sliceSpacing(slices []dicomSlice, withPosition bool) [3]float64 {
	first := slices[0]
	if len(first.spacing) == 0 {
		return [3]float64{}
	}
	row := first.spacing[0]
	col := row
	if len(first.spacing) > 1 {
		col = first.spacing[1]
	}

	z := first.between
	if withPosition && len(slices) > 1 {
		if d := math.Abs(slices[1].position[2] - first.position[2]); d > 0 {
			z = d
		}
	}
	if z == 0 {
		z = 1
	}
	return [3]float64{col, row, z}
}

// Проверка реализации интерфейса
var _ port.VolumeLoader = (*DICOMSeriesLoader)(nil)
