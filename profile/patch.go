package profile

// Patch is a partial profile returned by one data source. Nil fields were not
// provided; empty strings are treated as not provided.
type Patch struct {
	ID         *string
	FirstName  *string
	LastName   *string
	Headline   *string
	Email      *string
	PictureURL *string
	VanityName *string

	ProfileViews    *int
	Connections     *int
	PostImpressions *int
}

// apply copies the provided fields into p and tags them with source. A field that is
// already tagged real is never overwritten.
func (patch *Patch) apply(p *Profile, source Source) {
	if patch == nil {
		return
	}
	setString(p, FieldID, &p.ID, patch.ID, source)
	setString(p, FieldFirstName, &p.FirstName, patch.FirstName, source)
	setString(p, FieldLastName, &p.LastName, patch.LastName, source)
	setString(p, FieldHeadline, &p.Headline, patch.Headline, source)
	setString(p, FieldEmail, &p.Email, patch.Email, source)
	setString(p, FieldPictureURL, &p.PictureURL, patch.PictureURL, source)
	setString(p, FieldVanityName, &p.VanityName, patch.VanityName, source)
	setInt(p, FieldProfileViews, &p.Analytics.ProfileViews, patch.ProfileViews, source)
	setInt(p, FieldConnections, &p.Analytics.Connections, patch.Connections, source)
	setInt(p, FieldPostImpressions, &p.Analytics.PostImpressions, patch.PostImpressions, source)
}

func setString(p *Profile, f Field, dst *string, v *string, source Source) {
	if v == nil || *v == "" || p.SourceOf(f) == SourceReal {
		return
	}
	*dst = *v
	p.Provenance[f] = source
}

func setInt(p *Profile, f Field, dst *int, v *int, source Source) {
	if v == nil || p.SourceOf(f) == SourceReal {
		return
	}
	*dst = *v
	p.Provenance[f] = source
}
