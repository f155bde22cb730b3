package fetch

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/metrics"
	"github.com/schtekar/wells-fug/internal/models"
)

// Статусы скважин, исключаемые из реестра
var excludedStatuses = map[string]bool{
	"WILL NEVER BE DRILLED": true,
}

// Поля, запрашиваемые у FeatureServer
const sodirOutFields = "wlbWellboreName,wlbWell,wlbPurpose,wlbStatus,wlbEntryDate," +
	"wlbDrillingFacilityFixedOrMove,wlbDrillingFacility,wlbDrillingOperator," +
	"wlbWellType,wlbField,wlbFactPageUrl"

// SodirClient клиент FeatureServer реестра скважин SODIR
type SodirClient struct {
	client  *resty.Client
	config  *config.SodirConfig
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewSodirClient создает клиент SODIR с ограничением частоты постраничных
// запросов
func NewSodirClient(cfg *config.SodirConfig, logger *logrus.Logger) *SodirClient {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetHeader("User-Agent", "wells-fug/1.0")

	return &SodirClient{
		client:  client,
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		logger:  logger,
	}
}

// sodirIDsResponse ответ на запрос идентификаторов
type sodirIDsResponse struct {
	ObjectIDs []int `json:"objectIds"`
}

// sodirFeature элемент ответа FeatureServer
type sodirFeature struct {
	Attributes map[string]interface{} `json:"attributes"`
	Geometry   *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"geometry"`
}

// sodirFeaturesResponse ответ на запрос объектов
type sodirFeaturesResponse struct {
	Features []sodirFeature `json:"features"`
}

// queryURL возвращает URL запросов к слою скважин
func (c *SodirClient) queryURL() string {
	return fmt.Sprintf("%s/%d/query", c.config.BaseURL, c.config.LayerID)
}

// FetchWellbores загружает весь реестр скважин постранично по диапазонам
// OBJECTID и применяет бизнес-фильтры
func (c *SodirClient) FetchWellbores(ctx context.Context) ([]*models.Wellbore, error) {
	objectIDs, err := c.fetchObjectIDs(ctx)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("sodir").Inc()
		return nil, err
	}
	c.logger.WithField("count", len(objectIDs)).Info("Fetched SODIR object IDs")

	features, err := c.fetchFeaturesByRange(ctx, objectIDs)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("sodir").Inc()
		return nil, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -c.config.LookbackDays)
	wells := filterFeatures(features, cutoff)

	metrics.WellsTracked.Set(float64(len(wells)))
	c.logger.WithFields(logrus.Fields{
		"features": len(features),
		"wells":    len(wells),
	}).Info("Filtered SODIR wellbores")

	return wells, nil
}

// fetchObjectIDs получает все OBJECTID слоя
func (c *SodirClient) fetchObjectIDs(ctx context.Context) ([]int, error) {
	var ids sodirIDsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"where":         "1=1",
			"returnIdsOnly": "true",
			"f":             "json",
		}).
		SetResult(&ids).
		Get(c.queryURL())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch object IDs: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("object IDs request failed with status %d", resp.StatusCode())
	}

	sorted := append([]int(nil), ids.ObjectIDs...)
	sort.Ints(sorted)
	return sorted, nil
}

// fetchFeaturesByRange постранично запрашивает объекты по диапазонам OBJECTID
func (c *SodirClient) fetchFeaturesByRange(ctx context.Context, objectIDs []int) ([]sodirFeature, error) {
	var features []sodirFeature
	pageSize := c.config.PageSize

	for i := 0; i < len(objectIDs); i += pageSize {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		end := i + pageSize
		if end > len(objectIDs) {
			end = len(objectIDs)
		}
		batch := objectIDs[i:end]

		where := fmt.Sprintf("OBJECTID >= %d AND OBJECTID <= %d", batch[0], batch[len(batch)-1])

		var page sodirFeaturesResponse
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"where":     where,
				"outFields": sodirOutFields,
				"outSR":     "4326",
				"f":         "json",
			}).
			SetResult(&page).
			Get(c.queryURL())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch features: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("features request failed with status %d", resp.StatusCode())
		}

		features = append(features, page.Features...)
		c.logger.WithFields(logrus.Fields{
			"batch": len(page.Features),
			"total": len(features),
		}).Debug("Fetched SODIR feature page")
	}

	return features, nil
}

// filterFeatures применяет бизнес-правила: валидная геометрия, не исключенный
// статус, скважина недавно начата либо еще не начата
func filterFeatures(features []sodirFeature, cutoff time.Time) []*models.Wellbore {
	var wells []*models.Wellbore

	for _, feature := range features {
		if feature.Geometry == nil {
			continue
		}

		status := strings.ToUpper(attrString(feature.Attributes, "wlbStatus"))
		if excludedStatuses[status] {
			continue
		}

		entryDate := ParseEntryDate(feature.Attributes["wlbEntryDate"])
		if entryDate != nil && entryDate.Before(cutoff) {
			continue
		}

		entryStr := ""
		if entryDate != nil {
			entryStr = entryDate.Format("2006-01-02")
		}

		wells = append(wells, &models.Wellbore{
			Name:        attrString(feature.Attributes, "wlbWellboreName"),
			Well:        attrString(feature.Attributes, "wlbWell"),
			Status:      status,
			EntryDate:   entryStr,
			RigName:     attrString(feature.Attributes, "wlbDrillingFacility"),
			RigType:     attrString(feature.Attributes, "wlbDrillingFacilityFixedOrMove"),
			Operator:    attrString(feature.Attributes, "wlbDrillingOperator"),
			WellType:    attrString(feature.Attributes, "wlbWellType"),
			Field:       attrString(feature.Attributes, "wlbField"),
			FactPageURL: attrString(feature.Attributes, "wlbFactPageUrl"),
			Latitude:    feature.Geometry.Y,
			Longitude:   feature.Geometry.X,
		})
	}

	return wells
}

// ParseEntryDate разбирает дату входа SODIR: ESRI timestamp в миллисекундах,
// целое YYYYMMDD или ISO-подобная строка. Nil при отсутствии или
// нечитаемом значении.
func ParseEntryDate(value interface{}) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		if v == 0 {
			return nil
		}
		if v > 1e7 {
			// ESRI timestamp (миллисекунды с эпохи)
			t := time.UnixMilli(int64(v)).UTC()
			return &t
		}
		// Формат YYYYMMDD
		if t, err := time.Parse("20060102", strconv.Itoa(int(v))); err == nil {
			return &t
		}
		return nil
	case string:
		if v == "" {
			return nil
		}
		if len(v) >= 10 {
			if t, err := time.Parse("2006-01-02", v[:10]); err == nil {
				return &t
			}
		}
		return nil
	}
	return nil
}

// attrString достает строковый атрибут, отсутствие дает пустую строку
func attrString(attributes map[string]interface{}, key string) string {
	if value, ok := attributes[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
