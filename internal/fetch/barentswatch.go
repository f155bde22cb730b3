// Package fetch содержит клиенты внешних источников: живой AIS BarentsWatch,
// исторический AIS Kystdatahuset и реестр скважин SODIR. Все разноформатные
// ответы нормализуются в модели на этой границе; ядро движка не знает о
// формах источников.
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
	"github.com/schtekar/wells-fug/internal/registry"
)

// BarentswatchClient клиент Live AIS API BarentsWatch
type BarentswatchClient struct {
	client *resty.Client
	config *config.BarentswatchConfig
	logger *logrus.Logger
}

// NewBarentswatchClient создает клиент BarentsWatch
func NewBarentswatchClient(cfg *config.BarentswatchConfig, logger *logrus.Logger) *BarentswatchClient {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetHeader("User-Agent", "wells-fug/1.0")

	return &BarentswatchClient{
		client: client,
		config: cfg,
		logger: logger,
	}
}

// tokenResponse ответ OAuth2 token endpoint
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// bwMessage сырое AIS сообщение BarentsWatch
type bwMessage struct {
	MMSI      int      `json:"mmsi"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	MsgTime   string   `json:"msgtime"`
}

// token получает access token по client credentials
func (c *BarentswatchClient) token(ctx context.Context) (string, error) {
	if c.config.ClientID == "" || c.config.ClientSecret == "" {
		return "", fmt.Errorf("missing BarentsWatch credentials")
	}

	var tr tokenResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.config.ClientID,
			"client_secret": c.config.ClientSecret,
			"scope":         "ais",
		}).
		SetResult(&tr).
		Post(c.config.TokenURL)
	if err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("token request failed with status %d", resp.StatusCode())
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}
	return tr.AccessToken, nil
}

// FetchLatest загружает AIS сообщения за последнее окно, фильтрует их до
// известных установок и оставляет самое свежее сообщение на каждую установку
func (c *BarentswatchClient) FetchLatest(ctx context.Context) ([]*models.PositionReport, error) {
	token, err := c.token(ctx)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(models.SourceBarentswatch).Inc()
		return nil, err
	}

	since := time.Now().UTC().Add(-time.Duration(c.config.WindowMinutes) * time.Minute)

	var messages []bwMessage
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetQueryParam("since", since.Format("2006-01-02T15:04:05Z")).
		SetResult(&messages).
		Get(c.config.APIURL)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(models.SourceBarentswatch).Inc()
		return nil, fmt.Errorf("failed to fetch AIS messages: %w", err)
	}
	if resp.IsError() {
		metrics.FetchErrors.WithLabelValues(models.SourceBarentswatch).Inc()
		return nil, fmt.Errorf("AIS request failed with status %d", resp.StatusCode())
	}

	reports := normalizeBWMessages(messages, c.logger)
	metrics.FetchedReports.WithLabelValues(models.SourceBarentswatch).Add(float64(len(reports)))

	c.logger.WithFields(logrus.Fields{
		"received": len(messages),
		"rigs":     len(reports),
	}).Info("Fetched BarentsWatch AIS positions")

	return reports, nil
}

// normalizeBWMessages приводит сырые сообщения к PositionReport: только
// известные MMSI, только валидные поля, самое свежее сообщение на установку
func normalizeBWMessages(messages []bwMessage, logger *logrus.Logger) []*models.PositionReport {
	known := registry.MMSISet()
	latest := make(map[int]*models.PositionReport)

	for _, msg := range messages {
		if !known[msg.MMSI] {
			continue
		}
		if msg.Latitude == nil || msg.Longitude == nil || msg.MsgTime == "" {
			logger.WithField("mmsi", msg.MMSI).Debug("Skipping AIS message with missing fields")
			continue
		}

		msgTime, err := time.Parse(time.RFC3339, msg.MsgTime)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"mmsi":    msg.MMSI,
				"msgtime": msg.MsgTime,
			}).Warn("Skipping AIS message with unparseable msgtime")
			continue
		}

		rigName, _ := registry.NameForMMSI(msg.MMSI)
		report := &models.PositionReport{
			RigName:   rigName,
			MMSI:      msg.MMSI,
			Latitude:  *msg.Latitude,
			Longitude: *msg.Longitude,
			MsgTime:   msgTime.UTC(),
			Source:    models.SourceBarentswatch,
		}

		if prev := latest[msg.MMSI]; prev == nil || report.MsgTime.After(prev.MsgTime) {
			latest[msg.MMSI] = report
		}
	}

	reports := make([]*models.PositionReport, 0, len(latest))
	for _, report := range latest {
		reports = append(reports, report)
	}
	return reports
}
