// Package snapshot владеет скользящей историей позиций и именованными
// бакетами горизонтов для каждой буровой установки.
package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/metrics"
	"github.com/schtekar/wells-fug/internal/models"
	"github.com/schtekar/wells-fug/internal/registry"
)

// Store хранилище снимков по буровым установкам. Единственный владелец
// RigSnapshot: все мутации проходят через Merge / ApplyDailyRollover /
// SetExtendedBucket. Store не потокобезопасен — вызывающая сторона
// отвечает за то, что один запуск обрабатывается одним потоком управления.
type Store struct {
	rigs         map[string]*models.RigSnapshot
	lastRollDate string

	maxHistory int
	maxAge     time.Duration
	logger     *logrus.Logger
}

// MergeStats счетчики одного вызова Merge
type MergeStats struct {
	Merged  int
	Skipped int
}

// NewStore создает пустое хранилище
func NewStore(cfg *config.TrackingConfig, logger *logrus.Logger) *Store {
	return &Store{
		rigs:       make(map[string]*models.RigSnapshot),
		maxHistory: cfg.MaxHistoryLength,
		maxAge:     cfg.MaxHistoryAge,
		logger:     logger,
	}
}

// FromDocument восстанавливает хранилище из персистентного документа
func FromDocument(doc *models.StoreDocument, cfg *config.TrackingConfig, logger *logrus.Logger) *Store {
	s := NewStore(cfg, logger)
	if doc == nil {
		return s
	}
	s.lastRollDate = doc.LastRollDate
	for name, snap := range doc.Rigs {
		if snap == nil {
			continue
		}
		if snap.Buckets == nil {
			snap.Buckets = make(map[models.Horizon]*models.PositionReport)
		}
		s.rigs[registry.NormalizeName(name)] = snap
	}
	return s
}

// Document возвращает персистентное представление хранилища
func (s *Store) Document() *models.StoreDocument {
	doc := models.NewStoreDocument()
	doc.LastRollDate = s.lastRollDate
	for name, snap := range s.rigs {
		doc.Rigs[name] = snap
	}
	return doc
}

// Rig возвращает снимок установки или nil
func (s *Store) Rig(name string) *models.RigSnapshot {
	return s.rigs[registry.NormalizeName(name)]
}

// RigNames возвращает отсортированные имена отслеживаемых установок
func (s *Store) RigNames() []string {
	names := make([]string, 0, len(s.rigs))
	for name := range s.rigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge вливает пакет отчетов в хранилище. Отчеты могут приходить в любом
// порядке; повторная подача того же отчета не меняет историю. Некорректные
// отчеты пропускаются и считаются, но не прерывают пакет.
func (s *Store) Merge(reports []*models.PositionReport, now time.Time) MergeStats {
	var stats MergeStats

	for _, report := range reports {
		if report == nil {
			stats.Skipped++
			metrics.ReportsSkipped.Inc()
			continue
		}
		if err := report.Validate(); err != nil {
			stats.Skipped++
			metrics.ReportsSkipped.Inc()
			s.logger.WithFields(logrus.Fields{
				"rig":    report.RigName,
				"source": report.Source,
				"error":  err,
			}).Warn("Skipping malformed position report")
			continue
		}

		name := registry.NormalizeName(report.RigName)
		snap := s.rigs[name]
		if snap == nil {
			snap = models.NewRigSnapshot()
			s.rigs[name] = snap
		}

		if snap.Current == nil || report.MsgTime.After(snap.Current.MsgTime) {
			snap.Current = report
		}

		if !s.hasTimestamp(snap, report.MsgTime) {
			snap.History = append(snap.History, report)
		}

		stats.Merged++
		metrics.ReportsMerged.Inc()
	}

	// Границы истории и бакет 12h пересчитываются для всех установок,
	// в том числе не получивших отчетов в этом пакете. Бакет обновляется
	// до выселения: запись, пересекшая горизонт, должна успеть стать
	// референсной, прежде чем покинет историю.
	for _, snap := range s.rigs {
		s.sortHistory(snap)
		s.refresh12h(snap, now)
		s.pruneHistory(snap, now)
	}

	return stats
}

// hasTimestamp проверяет наличие в истории записи с идентичным timestamp
func (s *Store) hasTimestamp(snap *models.RigSnapshot, ts time.Time) bool {
	for _, entry := range snap.History {
		if entry.MsgTime.Equal(ts) {
			return true
		}
	}
	return false
}

// sortHistory упорядочивает историю по возрастанию timestamp
func (s *Store) sortHistory(snap *models.RigSnapshot) {
	sort.Slice(snap.History, func(i, j int) bool {
		return snap.History[i].MsgTime.Before(snap.History[j].MsgTime)
	})
}

// pruneHistory выбрасывает записи старше максимального возраста и обрезает
// историю до последних maxHistory записей. История должна быть отсортирована.
func (s *Store) pruneHistory(snap *models.RigSnapshot, now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := snap.History[:0]
	for _, entry := range snap.History {
		if !entry.MsgTime.Before(cutoff) {
			kept = append(kept, entry)
		}
	}
	snap.History = kept

	if len(snap.History) > s.maxHistory {
		snap.History = snap.History[len(snap.History)-s.maxHistory:]
	}
}

// refresh12h обновляет бакет 12h старейшей записью истории возрастом не
// менее 12 часов. Если ни одна запись еще не дозрела, прежнее значение
// бакета сохраняется: оно остается референсом до суточного сдвига.
func (s *Store) refresh12h(snap *models.RigSnapshot, now time.Time) {
	lookback := models.Horizon12h.Lookback()
	for _, entry := range snap.History {
		if now.Sub(entry.MsgTime) >= lookback {
			snap.Buckets[models.Horizon12h] = entry
			return
		}
	}
}

// ApplyDailyRollover сдвигает бакеты 2d←1d и 1d←12h один раз за UTC-дату.
// Повторный вызов в тот же день не выполняет сдвига. Возвращает true, если
// сдвиг произошел.
func (s *Store) ApplyDailyRollover(today time.Time) bool {
	dateStr := today.UTC().Format("2006-01-02")
	if s.lastRollDate == dateStr {
		return false
	}

	for _, snap := range s.rigs {
		if b := snap.Buckets[models.Horizon1d]; b != nil {
			snap.Buckets[models.Horizon2d] = b.Clone()
		}
		if b := snap.Buckets[models.Horizon12h]; b != nil {
			snap.Buckets[models.Horizon1d] = b.Clone()
		}
	}

	s.lastRollDate = dateStr
	s.logger.WithField("date", dateStr).Info("Applied daily bucket rollover")
	return true
}

// SetExtendedBucket записывает позицию в один из дальних бакетов (3d/1w/1mo),
// заполняемых историческим источником независимо от скользящей истории
func (s *Store) SetExtendedBucket(rigName string, horizon models.Horizon, report *models.PositionReport) error {
	if !horizon.Extended() {
		return fmt.Errorf("horizon %q is not an extended bucket", horizon)
	}
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	if err := report.Validate(); err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}

	name := registry.NormalizeName(rigName)
	snap := s.rigs[name]
	if snap == nil {
		snap = models.NewRigSnapshot()
		s.rigs[name] = snap
	}
	snap.Buckets[horizon] = report
	return nil
}
