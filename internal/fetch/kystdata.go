package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/metrics"
	"github.com/schtekar/wells-fug/internal/models"
)

// Окно поиска вокруг целевого момента горизонта
const kdhWindow = 6 * time.Hour

// KystdataClient клиент исторического AIS API Kystdatahuset. Реализует
// repository.HistoryLookup для дальних бакетов, когда архив MySQL не настроен.
type KystdataClient struct {
	client *resty.Client
	config *config.KystdataConfig
	logger *logrus.Logger
	jwt    string
}

// NewKystdataClient создает клиент Kystdatahuset
func NewKystdataClient(cfg *config.KystdataConfig, logger *logrus.Logger) *KystdataClient {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetHeader("User-Agent", "wells-fug/1.0")

	return &KystdataClient{
		client: client,
		config: cfg,
		logger: logger,
	}
}

// kdhAuthResponse ответ на аутентификацию
type kdhAuthResponse struct {
	Success bool `json:"success"`
	Data    struct {
		JWT string `json:"JWT"`
	} `json:"data"`
}

// kdhPositionsResponse ответ на запрос позиций. Каждая строка данных —
// массив [mmsi, timestamp, lon, lat, speed, course, ...].
type kdhPositionsResponse struct {
	Success bool            `json:"success"`
	Data    [][]interface{} `json:"data"`
}

// login аутентифицируется и кеширует JWT на время запуска
func (c *KystdataClient) login(ctx context.Context) error {
	if c.jwt != "" {
		return nil
	}
	if c.config.Username == "" || c.config.Password == "" {
		return fmt.Errorf("missing Kystdatahuset credentials")
	}

	var ar kdhAuthResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"username": c.config.Username,
			"password": c.config.Password,
		}).
		SetResult(&ar).
		Post(c.config.AuthURL)
	if err != nil {
		return fmt.Errorf("failed to authenticate with Kystdatahuset: %w", err)
	}
	if resp.IsError() || !ar.Success || ar.Data.JWT == "" {
		return fmt.Errorf("Kystdatahuset authentication failed with status %d", resp.StatusCode())
	}

	c.jwt = ar.Data.JWT
	c.logger.Debug("Authenticated with Kystdatahuset")
	return nil
}

// PositionAt возвращает историческую позицию установки, ближайшую к целевому
// моменту горизонта, либо nil при отсутствии данных в окне поиска
func (c *KystdataClient) PositionAt(ctx context.Context, rigName string, mmsi int, horizon models.Horizon) (*models.PositionReport, error) {
	if mmsi == 0 {
		return nil, fmt.Errorf("mmsi is required for history lookup")
	}
	lookback := horizon.Lookback()
	if lookback == 0 {
		return nil, fmt.Errorf("unknown horizon: %q", horizon)
	}

	if err := c.login(ctx); err != nil {
		metrics.FetchErrors.WithLabelValues(models.SourceKystdatahuset).Inc()
		return nil, err
	}

	target := time.Now().UTC().Add(-lookback)
	start := target.Add(-kdhWindow).Format("200601021504")
	end := target.Add(kdhWindow).Format("200601021504")

	var pr kdhPositionsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.jwt).
		SetBody(map[string]interface{}{
			"mmsiIds":  []int{mmsi},
			"start":    start,
			"end":      end,
			"minSpeed": 0,
		}).
		SetResult(&pr).
		Post(c.config.APIURL)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(models.SourceKystdatahuset).Inc()
		return nil, fmt.Errorf("failed to fetch historical positions: %w", err)
	}
	if resp.IsError() {
		metrics.FetchErrors.WithLabelValues(models.SourceKystdatahuset).Inc()
		return nil, fmt.Errorf("historical positions request failed with status %d", resp.StatusCode())
	}
	if !pr.Success || len(pr.Data) == 0 {
		return nil, nil
	}

	report, err := parseKDHRow(pr.Data[0], rigName, mmsi)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"rig":   rigName,
			"error": err,
		}).Warn("Skipping unparseable Kystdatahuset datapoint")
		return nil, nil
	}

	metrics.FetchedReports.WithLabelValues(models.SourceKystdatahuset).Inc()
	return report, nil
}

// parseKDHRow разбирает строку данных [mmsi, timestamp, lon, lat, ...]
func parseKDHRow(row []interface{}, rigName string, mmsi int) (*models.PositionReport, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("datapoint has %d fields, want at least 4", len(row))
	}

	tsStr, ok := row[1].(string)
	if !ok {
		return nil, fmt.Errorf("timestamp field is not a string")
	}
	msgTime, err := parseKDHTime(tsStr)
	if err != nil {
		return nil, err
	}

	lon, ok := row[2].(float64)
	if !ok {
		return nil, fmt.Errorf("longitude field is not a number")
	}
	lat, ok := row[3].(float64)
	if !ok {
		return nil, fmt.Errorf("latitude field is not a number")
	}

	report := &models.PositionReport{
		RigName:   rigName,
		MMSI:      mmsi,
		Latitude:  lat,
		Longitude: lon,
		MsgTime:   msgTime,
		Source:    models.SourceKystdatahuset,
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return report, nil
}

// parseKDHTime разбирает метку времени Kystdatahuset. API отдает время без
// смещения; оно трактуется как UTC.
func parseKDHTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp: %q", value)
}
