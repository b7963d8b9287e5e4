package models

import "time"

// Founder is a user's public founder profile, one document per identity.
// Keyed by the user's id (string _id in the founders collection).
type Founder struct {
	UID       string    `bson:"_id" json:"uid"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	Email     string `bson:"email" json:"email"`
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	AvatarURL string `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`

	// Social links
	Linkedin    string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	X           string `bson:"x,omitempty" json:"x,omitempty"`
	Instagram   string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	OtherSocial string `bson:"otherSocial,omitempty" json:"otherSocial,omitempty"`
}

// PublicInfo projects the founder's public fields for denormalization into
// the startups the founder owns (ownersPublic entries).
func (f *Founder) PublicInfo() OwnerPublicInfo {
	return OwnerPublicInfo{
		UID:         f.UID,
		Email:       f.Email,
		Name:        f.Name,
		AvatarURL:   f.AvatarURL,
		Linkedin:    f.Linkedin,
		X:           f.X,
		Instagram:   f.Instagram,
		Website:     f.Website,
		OtherSocial: f.OtherSocial,
	}
}
