package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	Id             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User           primitive.ObjectID `json:"user" bson:"user"`
	Handle         string             `json:"handle" bson:"handle"`
	Company        string             `json:"company" bson:"company"`
	Website        string             `json:"website" bson:"website"`
	Location       string             `json:"location" bson:"location"`
	Status         string             `json:"status" bson:"status"`
	Skills         []string           `json:"skills" bson:"skills"`
	Bio            string             `json:"bio" bson:"bio"`
	GithubUsername string             `json:"githubusername" bson:"githubusername"`
	Social         Social             `json:"social" bson:"social"`
	Experience     []Experience       `json:"experience" bson:"experience"`
	Education      []Education        `json:"education" bson:"education"`
	Date           time.Time          `json:"date" bson:"date"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

type Experience struct {
	Id          primitive.ObjectID `json:"id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Company     string             `json:"company" bson:"company"`
	Location    string             `json:"location" bson:"location"`
	From        time.Time          `json:"from" bson:"from"`
	To          *time.Time         `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool               `json:"current" bson:"current"`
	Description string             `json:"description" bson:"description"`
}

type Education struct {
	Id           primitive.ObjectID `json:"id" bson:"_id"`
	School       string             `json:"school" bson:"school"`
	Degree       string             `json:"degree" bson:"degree"`
	FieldOfStudy string             `json:"fieldofstudy" bson:"fieldofstudy"`
	From         time.Time          `json:"from" bson:"from"`
	To           *time.Time         `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool               `json:"current" bson:"current"`
	Description  string             `json:"description" bson:"description"`
}

// ProfileView is a profile with its owner's name and avatar populated.
// Owner shadows Profile.User in the JSON output.
type ProfileView struct {
	Profile `bson:",inline"`
	Owner   UserSummary `json:"user" bson:"owner"`
}

// ProfileFields is a partial profile update. Nil pointers are fields absent from the request.
type ProfileFields struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Skills         []string
	Bio            *string
	GithubUsername *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// Apply copies the present fields onto p.
func (f ProfileFields) Apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Handle, f.Handle)
	set(&p.Company, f.Company)
	set(&p.Website, f.Website)
	set(&p.Location, f.Location)
	set(&p.Status, f.Status)
	set(&p.Bio, f.Bio)
	set(&p.GithubUsername, f.GithubUsername)
	set(&p.Social.Youtube, f.Youtube)
	set(&p.Social.Twitter, f.Twitter)
	set(&p.Social.Facebook, f.Facebook)
	set(&p.Social.Linkedin, f.Linkedin)
	set(&p.Social.Instagram, f.Instagram)
	if f.Skills != nil {
		p.Skills = f.Skills
	}
}
