// Package analysis вычисляет производные метрики по снимкам позиций:
// смещение, привязку к скважинам, approach ratio и операционный статус.
package analysis

import (
	"github.com/schtekar/wells-fug/internal/models"
)

// Movement результат классификации движения. Оба поля nil, когда
// классификация невозможна: "неизвестно" отличается от "стоит на месте"
// и сохраняется дальше по конвейеру.
type Movement struct {
	DisplacementM *float64
	IsMoving      *bool
}

// ClassifyMovement сравнивает текущую позицию с референсной.
// Порог сравнивается строго: смещение, равное порогу, движением не считается.
func ClassifyMovement(current, reference *models.PositionReport, stationaryThresholdM float64) Movement {
	if current == nil || reference == nil {
		return Movement{}
	}
	if current.Point().Validate() != nil || reference.Point().Validate() != nil {
		return Movement{}
	}

	displacement := reference.Point().DistanceTo(current.Point())
	moving := displacement > stationaryThresholdM

	return Movement{
		DisplacementM: &displacement,
		IsMoving:      &moving,
	}
}
