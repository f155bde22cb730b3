package analysis

import (
	"github.com/schtekar/wells-fug/internal/models"
)

// ClassifyStatus выводит грубый операционный статус установки из вердикта
// движения и ближайшей скважины. Чистая таблица решений: история за пределами
// текущего вызова не используется.
//
//   - on_site (high): не движется, ближайшая скважина активирована и в
//     пределах порога on-site;
//   - moving (medium): движется;
//   - stationary (medium): не движется, условие on-site не выполнено;
//   - unknown (low): вердикт движения отсутствует.
func ClassifyStatus(isMoving *bool, likely *AssessedWell, onsiteThresholdM float64) (models.RigStatus, models.Confidence) {
	if isMoving == nil {
		return models.StatusUnknown, models.ConfidenceLow
	}
	if *isMoving {
		return models.StatusMoving, models.ConfidenceMedium
	}
	if likely != nil && likely.DistanceM <= onsiteThresholdM && likely.Well.Activated() {
		return models.StatusOnSite, models.ConfidenceHigh
	}
	return models.StatusStationary, models.ConfidenceMedium
}
