package entity

// Settings es la configuración visible del portal. Se persiste como un único
// registro y se pasa explícitamente a quien la necesite (nada de estado global).
type Settings struct {
	PortalName   string `json:"portal_name"`
	Theme        string `json:"theme"`
	LogoHeightPx int    `json:"logo_height_px"`
}

// DefaultSettings valores iniciales del portal.
func DefaultSettings() Settings {
	return Settings{PortalName: "Portal Radiológico", Theme: "Flatly", LogoHeightPx: 40}
}
