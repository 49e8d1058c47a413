package render

import (
	"github.com/goodsign/monday"
)

// Labels is the user-visible text of one locale. Messages holding a verb are
// fmt format strings.
type Labels struct {
	Locale        monday.Locale
	MonthHeading  string // Go layout for calendar group headings
	WeekdayLayout string

	Finalized   string
	Pending     string
	UnknownDate string
	Placeholder string

	ColumnDate     string
	ColumnRace     string
	ColumnSport    string
	ColumnLocation string
	ColumnStatus   string
	ColumnAction   string

	ResultAction string
	ViewResult   string
	DeleteAction string

	Messages Messages
	Panels   PanelLabels
}

// Messages are alerts, prompts and loading texts shown by the workflows
type Messages struct {
	Loading         string
	InvalidEmail    string
	LoginFailed     string // %s detail
	Unknown         string
	ConnectionError string // %v error
	LoginRequired   string

	EmptyQuery    string
	Searching     string
	SearchError   string // %s detail
	ProcessFailed string
	SaveCandidate string
	Saved         string
	SaveError     string // %s detail
	SaveFailed    string
	SaveConnError string
	Cancelled     string

	DeleteConfirm   string // %q race name
	Deleted         string // %q race name
	DeleteError     string // %s detail
	DeleteFailed    string
	DeleteConnError string

	NameEmpty        string
	ProfileSaved     string
	ProfileSaveError string

	ResultConfirm   string // %q runner name
	ResultPrompt    string
	ResultSearching string
	ResultCaveat    string
	ResultError     string // %s detail

	ShareError string
	CopyLabel  string
	Copied     string

	RaceNotFound    string // %s race id
	RaceNotFinished string // %q race name
}

// PanelLabels title and label the candidate review and result panels
type PanelLabels struct {
	CandidateTitle string
	SavedResult    string
	ResultFound    string
	ResultNotFound string
	NotAvailable   string

	Name      string
	Sport     string
	Date      string
	Location  string
	Distances string
	URL       string
	Status    string

	Runner           string
	Time             string
	OverallPosition  string
	CategoryPosition string
	Pace             string
	Notes            string
}

// DefaultLocale is used for unknown locale names
const DefaultLocale = "en_US"

var locales = map[string]Labels{
	"en_US": {
		Locale:        monday.LocaleEnUS,
		MonthHeading:  "January 2006",
		WeekdayLayout: "Mon",

		Finalized:   "Finalized",
		Pending:     "Pending",
		UnknownDate: "No date",
		Placeholder: "No races added yet.",

		ColumnDate:     "Date",
		ColumnRace:     "Race",
		ColumnSport:    "Sport",
		ColumnLocation: "Location",
		ColumnStatus:   "Status",
		ColumnAction:   "Action",

		ResultAction: "Result",
		ViewResult:   "View Result",
		DeleteAction: "Delete",

		Messages: Messages{
			Loading:         "Loading...",
			InvalidEmail:    "Invalid email",
			LoginFailed:     "Login failed: %s",
			Unknown:         "Unknown",
			ConnectionError: "Connection error: %v",
			LoginRequired:   "You must log in first",

			EmptyQuery:    "Type a name first",
			Searching:     "Searching for the race...",
			SearchError:   "Error: %s",
			ProcessFailed: "Could not process the request",
			SaveCandidate: "Save this race?",
			Saved:         "Race saved successfully!",
			SaveError:     "Error saving: %s",
			SaveFailed:    "Could not save",
			SaveConnError: "Connection error while saving",
			Cancelled:     "Operation cancelled",

			DeleteConfirm:   "Are you sure you want to delete %q?",
			Deleted:         "Race %q deleted successfully",
			DeleteError:     "Error deleting: %s",
			DeleteFailed:    "Could not delete",
			DeleteConnError: "Connection error while deleting",

			NameEmpty:        "Name cannot be empty",
			ProfileSaved:     "Profile saved. Result searches will now use this name.",
			ProfileSaveError: "Error saving profile",

			ResultConfirm:   "Search result for %q?",
			ResultPrompt:    "Your profile has no name.\nEnter your full name to search:",
			ResultSearching: "Searching for your official result...",
			ResultCaveat:    "(Results may be published in a PDF or a private search engine that cannot be read)",
			ResultError:     "Error: %s",

			ShareError: "Error generating share link",
			CopyLabel:  "Copy",
			Copied:     "Copied!",

			RaceNotFound:    "Race %s not found",
			RaceNotFinished: "%q has not taken place yet",
		},
		Panels: PanelLabels{
			CandidateTitle: "Race data found:",
			SavedResult:    "SAVED RESULT",
			ResultFound:    "RESULT FOUND!",
			ResultNotFound: "Result not found",
			NotAvailable:   "Not available",

			Name:      "Name",
			Sport:     "Sport",
			Date:      "Date",
			Location:  "Location",
			Distances: "Distances",
			URL:       "URL",
			Status:    "Status",

			Runner:           "Runner",
			Time:             "Time",
			OverallPosition:  "Overall pos.",
			CategoryPosition: "Category pos.",
			Pace:             "Pace",
			Notes:            "Notes",
		},
	},
	"es_ES": {
		Locale:        monday.LocaleEsES,
		MonthHeading:  "January de 2006",
		WeekdayLayout: "Mon",

		Finalized:   "Finalizada",
		Pending:     "Pendiente",
		UnknownDate: "Sin fecha",
		Placeholder: "No se añadió ninguna carrera todavía.",

		ColumnDate:     "Fecha",
		ColumnRace:     "Carrera",
		ColumnSport:    "Deporte",
		ColumnLocation: "Lugar",
		ColumnStatus:   "Estado",
		ColumnAction:   "Acción",

		ResultAction: "Resultado",
		ViewResult:   "Ver Resultado",
		DeleteAction: "Eliminar",

		Messages: Messages{
			Loading:         "Cargando...",
			InvalidEmail:    "Email inválido",
			LoginFailed:     "Error al entrar: %s",
			Unknown:         "Desconocido",
			ConnectionError: "Error de conexión: %v",
			LoginRequired:   "Debes iniciar sesión primero",

			EmptyQuery:    "Escribe un nombre primero",
			Searching:     "Buscando la carrera...",
			SearchError:   "Error: %s",
			ProcessFailed: "No se pudo procesar",
			SaveCandidate: "¿Guardar esta carrera?",
			Saved:         "¡Carrera guardada correctamente!",
			SaveError:     "Error al guardar: %s",
			SaveFailed:    "No se pudo guardar",
			SaveConnError: "Error de conexión al guardar",
			Cancelled:     "Operación cancelada",

			DeleteConfirm:   "¿Estás seguro de eliminar %q?",
			Deleted:         "Carrera %q eliminada correctamente",
			DeleteError:     "Error al eliminar: %s",
			DeleteFailed:    "No se pudo eliminar",
			DeleteConnError: "Error de conexión al eliminar",

			NameEmpty:        "El nombre no puede estar vacío",
			ProfileSaved:     "Perfil guardado. Ahora las búsquedas usarán este nombre.",
			ProfileSaveError: "Error guardando perfil",

			ResultConfirm:   "¿Buscar resultado para %q?",
			ResultPrompt:    "No tienes configurado tu perfil.\nIntroduce tu nombre completo para buscar:",
			ResultSearching: "Buscando tu resultado oficial...",
			ResultCaveat:    "(Es posible que los resultados estén en un PDF o buscador privado que no se puede leer)",
			ResultError:     "Error: %s",

			ShareError: "Error al generar enlace de compartir",
			CopyLabel:  "Copiar",
			Copied:     "¡Copiado!",

			RaceNotFound:    "No existe la carrera %s",
			RaceNotFinished: "%q todavía no se ha celebrado",
		},
		Panels: PanelLabels{
			CandidateTitle: "Datos encontrados por la IA:",
			SavedResult:    "RESULTADO GUARDADO",
			ResultFound:    "¡RESULTADO ENCONTRADO!",
			ResultNotFound: "Resultado no encontrado",
			NotAvailable:   "No disponible",

			Name:      "Nombre",
			Sport:     "Deporte",
			Date:      "Fecha",
			Location:  "Lugar",
			Distances: "Distancias",
			URL:       "URL",
			Status:    "Estado",

			Runner:           "Corredor",
			Time:             "Tiempo",
			OverallPosition:  "Pos. General",
			CategoryPosition: "Pos. Categoría",
			Pace:             "Ritmo",
			Notes:            "Notas",
		},
	},
}

// LabelsFor returns the label table of a locale, falling back to en_US
func LabelsFor(locale string) Labels {
	if l, ok := locales[locale]; ok {
		return l
	}
	return locales[DefaultLocale]
}

// Locales lists the locale names with a label table
func Locales() []string {
	return []string{"en_US", "es_ES"}
}
