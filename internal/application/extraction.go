package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

// RunRequest аргументы одного прогона.
type RunRequest struct {
	DataDir    string // корень набора данных
	OutputPath string // путь к CSV
	ParamsPath string // файл параметров извлечения, может быть пустым
}

// ExtractionService обходит набор данных, извлекает признаки и пишет таблицу.
type ExtractionService struct {
	fs         billy.Filesystem
	patients   port.PatientRepository
	images     port.VolumeLoader
	masks      port.VolumeLoader
	extractors port.ExtractorProvider
	tables     *TableService
	writer     port.TableWriter
	notifier   port.RunNotifier
	progress   io.Writer
	logger     *zap.Logger
}

// NewExtractionService создаёт сервис. notifier может быть nil.
func NewExtractionService(
	fs billy.Filesystem,
	patients port.PatientRepository,
	images, masks port.VolumeLoader,
	extractors port.ExtractorProvider,
	tables *TableService,
	writer port.TableWriter,
	notifier port.RunNotifier,
	progress io.Writer,
	logger *zap.Logger,
) *ExtractionService {
	if progress == nil {
		progress = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractionService{
		fs:         fs,
		patients:   patients,
		images:     images,
		masks:      masks,
		extractors: extractors,
		tables:     tables,
		writer:     writer,
		notifier:   notifier,
		progress:   progress,
		logger:     logger,
	}
}

// Run выполняет прогон целиком. Любая ошибка прерывает его, CSV при этом не пишется.
func (s *ExtractionService) Run(ctx context.Context, req RunRequest) (report *entity.RunReport, err error) {
	started := time.Now()
	report = &entity.RunReport{DataDir: req.DataDir, OutputPath: req.OutputPath}

	defer func() {
		report.Duration = time.Since(started)
		report.Err = err
		s.notify(ctx, report)
	}()

	extractor, err := s.extractors.ForParams(ctx, req.ParamsPath)
	if err != nil {
		return report, err
	}

	fmt.Fprintf(s.progress, "Patients data are loaded from : %s \n", req.DataDir)
	fmt.Fprintf(s.progress, "Features values will be written at: %s\n", req.OutputPath)

	if err := s.patients.Clear(ctx); err != nil {
		return report, err
	}

	if err := s.walk(ctx, req.DataDir, extractor, report); err != nil {
		return report, err
	}

	patients, err := s.patients.List(ctx)
	if err != nil {
		return report, err
	}

	table, err := s.tables.Build(patients)
	if err != nil {
		return report, err
	}

	if err := s.writer.Write(ctx, req.OutputPath, table); err != nil {
		return report, err
	}
	report.Rows = len(table.Rows)

	s.logger.Info("features written",
		zap.String("output", req.OutputPath),
		zap.Int("patients", report.Patients),
		zap.Int("rows", report.Rows),
	)
	return report, nil
}

func (s *ExtractionService) walk(ctx context.Context, dataDir string, extractor port.FeatureExtractor, report *entity.RunReport) error {
	entries, err := s.fs.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("%w: list %s: %v", entity.ErrDataset, dataDir, err)
	}

	for _, e := range entries {
		if !entity.IsPatientEntry(e.Name()) {
			s.logger.Debug("entry skipped", zap.String("name", e.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		patient, err := s.loadPatient(ctx, dataDir, e.Name())
		if err != nil {
			return err
		}
		report.Patients++

		if err := s.processLesions(ctx, patient, extractor, report); err != nil {
			return err
		}
	}
	return nil
}

func (s *ExtractionService) loadPatient(ctx context.Context, dataDir, ref string) (*entity.Patient, error) {
	fmt.Fprintf(s.progress, "Processing patients %s ...\n", ref)

	imageDir := entity.ImageDir(dataDir, ref)
	image, err := s.images.Load(ctx, imageDir)
	if err != nil {
		return nil, fmt.Errorf("patient %s: %w", ref, err)
	}

	patient := entity.NewPatient(ref, dataDir, image)
	if err := s.patients.Add(ctx, patient); err != nil {
		return nil, fmt.Errorf("patient %s: %w", ref, err)
	}

	s.logger.Debug("patient loaded",
		zap.String("patient", ref),
		zap.Int("x", image.SizeX), zap.Int("y", image.SizeY), zap.Int("z", image.SizeZ),
	)
	return patient, nil
}

func (s *ExtractionService) processLesions(ctx context.Context, patient *entity.Patient, extractor port.FeatureExtractor, report *entity.RunReport) error {
	entries, err := s.fs.ReadDir(patient.Dir())
	if err != nil {
		return fmt.Errorf("%w: list %s: %v", entity.ErrDataset, patient.Dir(), err)
	}

	for _, e := range entries {
		if !entity.IsLesionEntry(e.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		ref := e.Name()
		fmt.Fprintf(s.progress, "   Processing lesion %s ...\n", ref)

		maskPath := s.fs.Join(patient.Dir(), ref)
		mask, err := s.masks.Load(ctx, maskPath)
		if err != nil {
			return fmt.Errorf("lesion %s %s: %w", patient.Ref, ref, err)
		}

		lesion := entity.NewLesion(ref, maskPath, mask)
		patient.AddLesion(lesion)

		features, err := extractor.Extract(ctx, patient.Image, mask)
		if err != nil {
			return fmt.Errorf("lesion %s %s: %w", patient.Ref, ref, err)
		}
		if err := lesion.SetFeatures(features); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrFeatureComputation, err)
		}
		report.Lesions++
	}
	return nil
}

func (s *ExtractionService) notify(ctx context.Context, report *entity.RunReport) {
	if s.notifier == nil {
		return
	}
	// Уведомление отправляем и после отмены прогона.
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := s.notifier.NotifyRunFinished(ctx, report); err != nil {
		s.logger.Warn("run notification failed", zap.Error(err))
	}
}
