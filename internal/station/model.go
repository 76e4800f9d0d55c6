package station

// Video quality tiers reported by the guide-data provider.
const (
	QualitySD  = "SDTV"
	QualityHD  = "HDTV"
	QualityUHD = "UHDTV"
)

// Provenance tags. Informational only; never used in merge decisions.
const (
	SourceBase = "base"
	SourceUser = "user"
	SourceAPI  = "api"
)

// CountryUnknown is the placeholder country code for records whose
// origin could not be determined.
const CountryUnknown = "UNK"

// Record is one station entry in a store file.
type Record struct {
	StationID    string `json:"stationId"`
	Name         string `json:"name,omitempty"`
	CallSign     string `json:"callSign,omitempty"`
	Country      string `json:"country,omitempty"`
	VideoQuality string `json:"videoQuality,omitempty"`
	Network      string `json:"network,omitempty"`
	Language     string `json:"language,omitempty"`
	LogoURI      string `json:"logoURI,omitempty"`
	Description  string `json:"description,omitempty"`
	Source       string `json:"source,omitempty"`
}

// ValidQuality reports whether q is one of the known quality tiers.
func ValidQuality(q string) bool {
	switch q {
	case QualitySD, QualityHD, QualityUHD:
		return true
	}
	return false
}

// Fill applies defaults to a record: a missing country becomes
// CountryUnknown.
func (r *Record) Fill() {
	if r.Country == "" {
		r.Country = CountryUnknown
	}
}

// Patch copies non-empty fields of src over r. Fields src omits are
// left alone, so a partial enrichment response never erases local
// data. The station ID and provenance tag are never patched.
func (r *Record) Patch(src Record) {
	if src.Name != "" {
		r.Name = src.Name
	}
	if src.CallSign != "" {
		r.CallSign = src.CallSign
	}
	if src.Country != "" && src.Country != CountryUnknown {
		r.Country = src.Country
	}
	if src.VideoQuality != "" {
		r.VideoQuality = src.VideoQuality
	}
	if src.Network != "" {
		r.Network = src.Network
	}
	if src.Language != "" {
		r.Language = src.Language
	}
	if src.LogoURI != "" {
		r.LogoURI = src.LogoURI
	}
	if src.Description != "" {
		r.Description = src.Description
	}
}
