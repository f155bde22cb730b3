package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/models"
)

// Окно поиска вокруг целевого момента горизонта
const historyTolerance = 12 * time.Hour

// MySQLRepository архив AIS позиций в MySQL. Выступает историческим
// источником для дальних бакетов и принимает влитые отчеты на хранение.
type MySQLRepository struct {
	db     *sql.DB
	logger *logrus.Logger
	config *config.MySQLConfig
}

// NewMySQLRepository создает новый MySQL репозиторий
func NewMySQLRepository(cfg *config.MySQLConfig, logger *logrus.Logger) (*MySQLRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mysql config cannot be nil")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mysql DSN is required")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	// Настройки connection pool
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(1 * time.Hour)

	return &MySQLRepository{
		db:     db,
		logger: logger,
		config: cfg,
	}, nil
}

// Ping проверяет соединение с MySQL
func (r *MySQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close закрывает соединение с MySQL
func (r *MySQLRepository) Close() error {
	return r.db.Close()
}

// PositionAt возвращает архивную позицию установки, ближайшую к целевому
// моменту горизонта, либо nil при отсутствии данных в окне поиска
func (r *MySQLRepository) PositionAt(ctx context.Context, rigName string, mmsi int, horizon models.Horizon) (*models.PositionReport, error) {
	if mmsi == 0 {
		return nil, fmt.Errorf("mmsi is required for history lookup")
	}
	lookback := horizon.Lookback()
	if lookback == 0 {
		return nil, fmt.Errorf("unknown horizon: %q", horizon)
	}

	target := time.Now().UTC().Add(-lookback)
	from := target.Add(-historyTolerance)
	to := target.Add(historyTolerance)

	query := `
		SELECT latitude, longitude, msgtime, source
		FROM ais_archive
		WHERE mmsi = ? AND msgtime BETWEEN ? AND ?
		ORDER BY ABS(TIMESTAMPDIFF(SECOND, msgtime, ?))
		LIMIT 1
	`

	var (
		lat, lon float64
		msgtime  time.Time
		source   string
	)
	err := r.db.QueryRowContext(ctx, query, mmsi, from, to, target).
		Scan(&lat, &lon, &msgtime, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query archive position: %w", err)
	}

	return &models.PositionReport{
		RigName:   rigName,
		MMSI:      mmsi,
		Latitude:  lat,
		Longitude: lon,
		MsgTime:   msgtime.UTC(),
		Source:    source,
	}, nil
}

// ArchiveReports сохраняет отчеты в архив. Дубликаты по (mmsi, msgtime)
// игнорируются, чтобы повторная подача того же фида не раздувала архив.
func (r *MySQLRepository) ArchiveReports(ctx context.Context, reports []*models.PositionReport) error {
	if len(reports) == 0 {
		return nil
	}

	query := `
		INSERT IGNORE INTO ais_archive (mmsi, rig_name, latitude, longitude, msgtime, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare archive insert: %w", err)
	}
	defer stmt.Close()

	archived := 0
	for _, report := range reports {
		if report == nil || report.Validate() != nil {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			report.MMSI, report.RigName,
			report.Latitude, report.Longitude,
			report.MsgTime.UTC(), report.Source,
		); err != nil {
			r.logger.WithFields(logrus.Fields{
				"rig":   report.RigName,
				"error": err,
			}).Warn("Failed to archive position report")
			continue
		}
		archived++
	}

	r.logger.WithField("count", archived).Debug("Archived position reports")
	return nil
}
