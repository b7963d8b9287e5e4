package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Startup lifecycle stages.
const (
	StageIdea     = "idea"
	StageMVP      = "mvp"
	StageLaunched = "launched"
	StageGrowth   = "growth"
)

// Moderation statuses. A startup is created pending and only an admin action
// moves it to approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// OwnerPublicInfo is the denormalized snapshot of a founder's public profile
// stored inside each startup the founder owns. uid is unique per startup.
type OwnerPublicInfo struct {
	UID         string `bson:"uid" json:"uid"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	AvatarURL   string `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Linkedin    string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	X           string `bson:"x,omitempty" json:"x,omitempty"`
	Instagram   string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	OtherSocial string `bson:"otherSocial,omitempty" json:"otherSocial,omitempty"`
}

// Startup is a directory listing document.
type Startup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Name     string `bson:"name" json:"name"`
	OneLiner string `bson:"oneLiner" json:"oneLiner"`
	// Slug is unique among approved startups and among a single owner's
	// startups (unpublished drafts by different owners may share one).
	Slug        string `bson:"slug" json:"slug"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	WebsiteURL  string `bson:"websiteUrl,omitempty" json:"websiteUrl,omitempty"`
	LogoURL     string `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	CountryCode string `bson:"countryCode,omitempty" json:"countryCode,omitempty"` // ISO alpha-2

	// Startup socials
	SocialLinkedin  string `bson:"socialLinkedin,omitempty" json:"socialLinkedin,omitempty"`
	SocialX         string `bson:"socialX,omitempty" json:"socialX,omitempty"`
	SocialInstagram string `bson:"socialInstagram,omitempty" json:"socialInstagram,omitempty"`
	SocialOther     string `bson:"socialOther,omitempty" json:"socialOther,omitempty"`

	Stage      string   `bson:"stage" json:"stage"`
	Hiring     bool     `bson:"hiring" json:"hiring"`
	Status     string   `bson:"status" json:"status"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Categories []string `bson:"categories,omitempty" json:"categories,omitempty"`

	// Ownership: user ids with write access, plus the denormalized public
	// profile of each owner (refreshed on founder profile saves).
	OwnerIDs     []string          `bson:"ownerIds" json:"ownerIds"`
	OwnersPublic []OwnerPublicInfo `bson:"ownersPublic,omitempty" json:"ownersPublic,omitempty"`

	// Engagement. upvotesCount always equals len(upvoterIds).
	UpvotesCount int      `bson:"upvotesCount" json:"upvotesCount"`
	UpvoterIDs   []string `bson:"upvoterIds,omitempty" json:"upvoterIds,omitempty"`

	DemoVideoURL        string   `bson:"demoVideoUrl,omitempty" json:"demoVideoUrl,omitempty"`
	RecentUpdates       []string `bson:"recentUpdates,omitempty" json:"recentUpdates,omitempty"`
	RecentSocialPostURL string   `bson:"recentSocialPostUrl,omitempty" json:"recentSocialPostUrl,omitempty"`
	CareersURL          string   `bson:"careersUrl,omitempty" json:"careersUrl,omitempty"`
	ContactEmail        string   `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
}

// OwnedBy reports whether uid has write access to this startup.
func (s *Startup) OwnedBy(uid string) bool {
	for _, id := range s.OwnerIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// HasUpvoted reports whether uid already upvoted this startup.
func (s *Startup) HasUpvoted(uid string) bool {
	for _, id := range s.UpvoterIDs {
		if id == uid {
			return true
		}
	}
	return false
}
