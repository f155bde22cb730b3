// Package registry содержит статический реестр буровых установок:
// единственный источник соответствия имя установки → MMSI и тип.
package registry

import (
	"sort"
	"strings"
)

// Типы буровых установок
const (
	TypeJackup  = "JACK-UP"
	TypeSemisub = "SEMISUB"
)

// Rig запись реестра буровой установки
type Rig struct {
	MMSI int
	Type string
}

// rigRegistry нормализованное имя (uppercase) → метаданные
var rigRegistry = map[string]Rig{
	"MÆRSK GUARDIAN":         {MMSI: 577494000, Type: TypeJackup},
	"WEST LINUS":             {MMSI: 257095000, Type: TypeJackup},
	"LINUS":                  {MMSI: 257095000, Type: TypeJackup}, // alias
	"WEST ELARA":             {MMSI: 259783000, Type: TypeJackup},
	"WEST EPSILON":           {MMSI: 351635000, Type: TypeJackup},
	"VALARIS VIKING":         {MMSI: 538004075, Type: TypeJackup},
	"SCARABEO 8":             {MMSI: 308928000, Type: TypeSemisub},
	"DEEPSEA ABERDEEN":       {MMSI: 310713000, Type: TypeSemisub},
	"ASKEPOTT":               {MMSI: 257459000, Type: TypeJackup},
	"TRANSOCEAN ENDURANCE":   {MMSI: 538010768, Type: TypeSemisub},
	"COSLPROMOTER":           {MMSI: 565798000, Type: TypeSemisub},
	"TRANSOCEAN EQUINOX":     {MMSI: 538010767, Type: TypeSemisub},
	"COSLINNOVATOR":          {MMSI: 566391000, Type: TypeSemisub},
	"NOBLE INTEGRATOR":       {MMSI: 538010630, Type: TypeJackup},
	"DEEPSEA NORDKAPP":       {MMSI: 310776000, Type: TypeSemisub},
	"NOBLE INVINCIBLE":       {MMSI: 538010632, Type: TypeJackup},
	"TRANSOCEAN ENABLER":     {MMSI: 258615000, Type: TypeSemisub},
	"DEEPSEA YANTAI":         {MMSI: 311000483, Type: TypeSemisub},
	"SHELF DRILLING BARSK":   {MMSI: 636016111, Type: TypeJackup},
	"ASKELADDEN":             {MMSI: 257452000, Type: TypeJackup},
	"COSLPIONEER":            {MMSI: 563050900, Type: TypeSemisub},
	"TRANSOCEAN SPITSBERGEN": {MMSI: 538004905, Type: TypeSemisub},
	"COSLPROSPECTOR":         {MMSI: 565369000, Type: TypeSemisub},
	"DEEPSEA STAVANGER":      {MMSI: 310767000, Type: TypeSemisub},
	"TRANSOCEAN ENCOURAGE":   {MMSI: 258627000, Type: TypeSemisub},
	"DEEPSEA ATLANTIC":       {MMSI: 310766000, Type: TypeSemisub},
	"DEEPSEA BOLLSTA":        {MMSI: 257440000, Type: TypeSemisub},
}

// NormalizeName приводит имя установки к ключу реестра
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Lookup возвращает запись реестра по имени установки
func Lookup(name string) (Rig, bool) {
	rig, ok := rigRegistry[NormalizeName(name)]
	return rig, ok
}

// MMSIFor возвращает MMSI для имени установки (0 если неизвестно)
func MMSIFor(name string) int {
	if rig, ok := Lookup(name); ok {
		return rig.MMSI
	}
	return 0
}

// TypeFor возвращает тип установки (JACK-UP / SEMISUB) или пустую строку
func TypeFor(name string) string {
	if rig, ok := Lookup(name); ok {
		return rig.Type
	}
	return ""
}

// NameForMMSI возвращает имя установки по MMSI.
// При наличии алиасов выбирается лексикографически первое имя.
func NameForMMSI(mmsi int) (string, bool) {
	var found string
	for name, rig := range rigRegistry {
		if rig.MMSI == mmsi && (found == "" || name < found) {
			found = name
		}
	}
	return found, found != ""
}

// KnownRigs возвращает отсортированный список всех имен установок
func KnownRigs() []string {
	names := make([]string, 0, len(rigRegistry))
	for name := range rigRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RigsByType возвращает все установки заданного типа
func RigsByType(rigType string) []string {
	rigType = strings.ToUpper(strings.TrimSpace(rigType))
	var names []string
	for name, rig := range rigRegistry {
		if rig.Type == rigType {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// MMSISet возвращает множество всех известных MMSI
func MMSISet() map[int]bool {
	set := make(map[int]bool, len(rigRegistry))
	for _, rig := range rigRegistry {
		set[rig.MMSI] = true
	}
	return set
}
