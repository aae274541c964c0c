package profile

import "time"

// Source records where a single profile field came from.
type Source string

const (
	SourceReal    Source = "real"    // returned by the identity provider
	SourceMock    Source = "mock"    // produced by the Simulator
	SourceMissing Source = "missing" // not available and not fabricated
)

// DataSource summarises the provenance of a whole profile.
type DataSource string

const (
	DataSourceReal    DataSource = "real"
	DataSourcePartial DataSource = "partial"
	DataSourceMock    DataSource = "mock"
)

// Field names a provenance-tracked profile field.
type Field string

const (
	FieldID              Field = "id"
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldHeadline        Field = "headline"
	FieldEmail           Field = "email"
	FieldPictureURL      Field = "pictureUrl"
	FieldVanityName      Field = "vanityName"
	FieldProfileViews    Field = "analytics.profileViews"
	FieldConnections     Field = "analytics.connections"
	FieldPostImpressions Field = "analytics.postImpressions"
)

// IdentityFields are the fields that identify the member. A profile with none of
// them sourced from the provider is treated as a failed fetch.
var IdentityFields = []Field{FieldID, FieldFirstName, FieldLastName, FieldEmail}

// AllFields lists every tracked field in display order.
var AllFields = []Field{
	FieldID, FieldFirstName, FieldLastName, FieldHeadline, FieldEmail, FieldPictureURL, FieldVanityName,
	FieldProfileViews, FieldConnections, FieldPostImpressions,
}

type Analytics struct {
	ProfileViews    int `json:"profileViews"`
	Connections     int `json:"connections"`
	PostImpressions int `json:"postImpressions"`
}

// Profile is the normalized member profile. Every field in AllFields has an entry in
// Provenance, and simulated values are always tagged SourceMock.
type Profile struct {
	ID         string           `json:"id"`
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Headline   string           `json:"headline"`
	Email      string           `json:"email"`
	PictureURL string           `json:"pictureUrl"`
	VanityName string           `json:"vanityName"`
	Analytics  Analytics        `json:"analytics"`
	Provenance map[Field]Source `json:"provenance"`
	DataSource DataSource       `json:"dataSource"`
	Warnings   []string         `json:"warnings,omitempty"`
	FetchedAt  time.Time        `json:"fetchedAt"`
}

func newProfile() *Profile {
	p := &Profile{Provenance: make(map[Field]Source, len(AllFields))}
	for _, f := range AllFields {
		p.Provenance[f] = SourceMissing
	}
	return p
}

// SourceOf returns the provenance of f.
func (p *Profile) SourceOf(f Field) Source {
	if s, ok := p.Provenance[f]; ok {
		return s
	}
	return SourceMissing
}

// HasRealIdentity reports whether any identity field was sourced from the provider.
func (p *Profile) HasRealIdentity() bool {
	for _, f := range IdentityFields {
		if p.SourceOf(f) == SourceReal {
			return true
		}
	}
	return false
}

func (p *Profile) hasRealAnalytics() bool {
	for _, f := range AllFields {
		if isAnalytics(f) && p.SourceOf(f) != SourceReal {
			return false
		}
	}
	return true
}

func isAnalytics(f Field) bool {
	return f == FieldProfileViews || f == FieldConnections || f == FieldPostImpressions
}

// FullName joins the first and last names.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

func (p *Profile) summarise() {
	sourced := 0
	for _, f := range AllFields {
		if p.SourceOf(f) == SourceReal {
			sourced++
		}
	}
	switch {
	case sourced == len(AllFields):
		p.DataSource = DataSourceReal
	case sourced > 0:
		p.DataSource = DataSourcePartial
	default:
		p.DataSource = DataSourceMock
	}
}
