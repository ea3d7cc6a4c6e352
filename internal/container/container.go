package container

import (
	"io"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	app "lesion-features/internal/application"
	"lesion-features/internal/domain/port"
	"lesion-features/internal/infrastructure/csvout"
	"lesion-features/internal/infrastructure/imaging"
	"lesion-features/internal/infrastructure/radiomics"
	"lesion-features/internal/infrastructure/storage"
)

type Container struct {
	TableService      *app.TableService
	ExtractionService *app.ExtractionService
}

// New собирает сервисы поверх fs. Загрузчики DICOM читают файлы по путям ОС,
// поэтому в проде fs должна быть osfs.
func New(fs billy.Filesystem, notifier port.RunNotifier, progress io.Writer, logger *zap.Logger) *Container {
	patientRepo := storage.NewMemoryPatientRepository()

	dicomLoader := imaging.NewDICOMSeriesLoader(fs, logger.Named("dicom"))
	sliceLoader := imaging.NewSliceStackLoader(fs, logger.Named("slices"))
	maskLoader := imaging.NewAutoLoader(fs, dicomLoader, sliceLoader)

	tableService := app.NewTableService()
	extractionService := app.NewExtractionService(
		fs,
		patientRepo,
		dicomLoader,
		maskLoader,
		radiomics.NewProvider(fs, logger.Named("radiomics")),
		tableService,
		csvout.NewWriter(fs, logger.Named("csv")),
		notifier,
		progress,
		logger,
	)

	return &Container{
		TableService:      tableService,
		ExtractionService: extractionService,
	}
}
