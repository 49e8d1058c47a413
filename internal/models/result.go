package models

// Result is a user's personal outcome for a past race, as persisted by the
// backend and attached to the race record.
type Result struct {
	OfficialTime     Text `json:"tiempo_oficial"`
	OverallPosition  Text `json:"posicion_general"`
	CategoryPosition Text `json:"posicion_categoria"`
	AveragePace      Text `json:"ritmo_medio"`
	Comments         Text `json:"comentarios"`
}

// ResultQuery is the payload of a personal result lookup
type ResultQuery struct {
	RaceName   string `json:"nombre_carrera"`
	Year       int    `json:"anio"`
	RunnerName string `json:"nombre_corredor"`
}

// ResultLookup is the lookup service answer. When Found is false only Message
// is meaningful.
type ResultLookup struct {
	Found            bool   `json:"encontrado"`
	Runner           Text   `json:"corredor"`
	Time             Text   `json:"tiempo"`
	Position         Text   `json:"posicion"`
	CategoryPosition Text   `json:"posicion_categoria"`
	Pace             Text   `json:"ritmo"`
	Message          string `json:"mensaje"`
}
