package teamname

// FootballDataAliases maps spellings seen across football-data.co.uk
// seasons (keyed by Key) to the name used in recent files.
var FootballDataAliases = map[string]string{
	// England
	"nottingham forest":   "Nott'm Forest",
	"nottm forest":        "Nott'm Forest",
	"manchester united":   "Man United",
	"man utd":             "Man United",
	"manchester city":     "Man City",
	"sheffield utd":       "Sheffield United",
	"wolverhampton":       "Wolves",
	"tottenham hotspur":   "Tottenham",
	"spurs":               "Tottenham",
	"west ham united":     "West Ham",
	"qpr":                 "QPR",
	"queens park rangers": "QPR",

	// Spain
	"ath madrid":          "Ath Madrid",
	"atletico madrid":     "Ath Madrid",
	"ath bilbao":          "Ath Bilbao",
	"athletic bilbao":     "Ath Bilbao",
	"espanyol":            "Espanol",
	"la coruna":           "La Coruna",
	"deportivo la coruna": "La Coruna",
	"sp gijon":            "Sp Gijon",
	"sporting gijon":      "Sp Gijon",

	// Germany
	"bayern munich":   "Bayern Munich",
	"bayern munchen":  "Bayern Munich",
	"m'gladbach":      "M'gladbach",
	"m´gladbach":      "M'gladbach",
	"monchengladbach": "M'gladbach",
	"fc koln":         "FC Koln",
	"koln":            "FC Koln",
	"greuther furth":  "Greuther Furth",

	// Italy
	"inter milan":    "Inter",
	"internazionale": "Inter",
	"ac milan":       "Milan",

	// Portugal / Greece / Turkey
	"sp lisbon":       "Sp Lisbon",
	"sporting lisbon": "Sp Lisbon",
	"sporting cp":     "Sp Lisbon",
	"olympiakos":      "Olympiakos",
	"olympiacos":      "Olympiakos",
	"besiktas":        "Besiktas",
	"fenerbahce":      "Fenerbahce",
	"galatasaray":     "Galatasaray",
}
