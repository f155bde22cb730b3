package analysis

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/metrics"
	"github.com/schtekar/wells-fug/internal/models"
	"github.com/schtekar/wells-fug/internal/registry"
	"github.com/schtekar/wells-fug/internal/snapshot"
)

// Analyzer строит документ анализа по хранилищу снимков и реестру скважин.
// Читает снимки и скважины, ничего не мутирует; каждый запуск производит
// независимый новый документ.
type Analyzer struct {
	resolver         snapshot.Resolver
	stationaryM      float64
	onsiteM          float64
	geohashPrecision int
	logger           *logrus.Logger
}

// NewAnalyzer создает анализатор с параметрами из конфигурации
func NewAnalyzer(cfg *config.TrackingConfig, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		resolver:         snapshot.NewResolver(cfg.ReferenceHorizon),
		stationaryM:      cfg.StationaryThresholdM,
		onsiteM:          cfg.OnsiteThresholdM,
		geohashPrecision: cfg.GeohashPrecision,
		logger:           logger,
	}
}

// Analyze прогоняет полный анализ: для каждой установки с известной текущей
// позицией — референсный бакет, классификация движения, оценка назначенных
// скважин, выбор вероятной цели и статус
func (a *Analyzer) Analyze(store *snapshot.Store, wells []*models.Wellbore, now time.Time) *models.AnalysisDocument {
	doc := &models.AnalysisDocument{
		GeneratedAt: now.UTC(),
		Rigs:        make(map[string]*models.RigResult),
		Wells:       make(map[string]models.WellResult),
	}

	wellsByRig := indexWellsByRig(wells)

	for _, rigName := range store.RigNames() {
		snap := store.Rig(rigName)
		current := snap.Current
		if current == nil {
			continue
		}

		result := a.analyzeRig(rigName, snap, current, wellsByRig[rigName], doc)
		doc.Rigs[rigName] = result
	}

	metrics.RigsAnalyzed.Set(float64(len(doc.Rigs)))
	a.logger.WithFields(logrus.Fields{
		"rigs":  len(doc.Rigs),
		"wells": len(doc.Wells),
	}).Info("Rig-well analysis complete")

	return doc
}

// analyzeRig строит результат для одной установки и дописывает обратные
// привязки скважин в документ
func (a *Analyzer) analyzeRig(rigName string, snap *models.RigSnapshot, current *models.PositionReport, assigned []*models.Wellbore, doc *models.AnalysisDocument) *models.RigResult {
	result := &models.RigResult{
		MMSI:             registry.MMSIFor(rigName),
		ReferenceHorizon: a.resolver.DefaultHorizon,
		AssignedWells:    make([]models.WellDistance, 0, len(assigned)),
	}

	if current.Point().Validate() == nil {
		result.Position = &models.PositionOut{
			Latitude:  current.Latitude,
			Longitude: current.Longitude,
			MsgTime:   current.MsgTime,
			Source:    current.Source,
			Geohash:   current.Point().Geohash(a.geohashPrecision),
		}
	}

	reference := a.resolver.Resolve(snap, "")
	movement := ClassifyMovement(current, reference, a.stationaryM)
	result.DisplacementM = movement.DisplacementM
	result.IsMoving = movement.IsMoving

	assessed := AssessWells(current, reference, movement.DisplacementM, assigned)
	for _, aw := range assessed {
		result.AssignedWells = append(result.AssignedWells, models.WellDistance{
			Name:          aw.Well.Name,
			DistanceM:     aw.DistanceM,
			ApproachRatio: aw.ApproachRatio,
		})
		doc.Wells[aw.Well.Name] = models.WellResult{
			RigName:        rigName,
			DistanceToRigM: aw.DistanceM,
		}
	}

	likely := LikelyWell(assessed)
	if likely != nil {
		name := likely.Well.Name
		result.LikelyWell = &name
	}

	result.Status, result.Confidence = ClassifyStatus(movement.IsMoving, likely, a.onsiteM)
	if result.Status == models.StatusOnSite && likely != nil {
		name := likely.Well.Name
		result.OnSiteWell = &name
	}

	for _, well := range assigned {
		if !well.Activated() {
			result.FutureWells = append(result.FutureWells, well.Name)
		}
	}

	return result
}

// indexWellsByRig группирует скважины по нормализованному имени установки
func indexWellsByRig(wells []*models.Wellbore) map[string][]*models.Wellbore {
	byRig := make(map[string][]*models.Wellbore)
	for _, well := range wells {
		if well == nil || well.RigName == "" {
			continue
		}
		key := registry.NormalizeName(well.RigName)
		byRig[key] = append(byRig[key], well)
	}
	return byRig
}
