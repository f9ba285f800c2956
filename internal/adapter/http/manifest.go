package http

// Manifest describes the add-on to the plugin host.
type Manifest struct {
	ID          string   `json:"id"`
	Version     string   `json:"version"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
	Types       []string `json:"types"`
	Catalogs    []string `json:"catalogs"`
	IDPrefixes  []string `json:"idPrefixes"`
	Logo        string   `json:"logo,omitempty"`
}

// DefaultManifest is served at /manifest.json.
var DefaultManifest = Manifest{
	ID:          "ro.subtitrari-noi.stremio",
	Version:     "1.0.0",
	Name:        "Subtitrari-Noi.ro",
	Description: "Subtitrări în limba română de pe subtitrari-noi.ro",
	Resources:   []string{"subtitles"},
	Types:       []string{"movie", "series"},
	Catalogs:    []string{},
	IDPrefixes:  []string{"tt"},
	Logo:        "https://subtitrari-noi.ro/imgs/logo_subtitrari.png",
}
