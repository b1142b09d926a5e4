package store

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the identity record. The password hash never leaves the server.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password" json:"-"`
	Avatar       string        `bson:"avatar" json:"avatar"`
	CreatedAt    time.Time     `bson:"date" json:"date"`
}

type Experience struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Company     string        `bson:"company" json:"company"`
	Location    string        `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time     `bson:"from" json:"from"`
	To          *time.Time    `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool          `bson:"current" json:"current"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	School       string        `bson:"school" json:"school"`
	Degree       string        `bson:"degree" json:"degree"`
	FieldOfStudy string        `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time     `bson:"from" json:"from"`
	To           *time.Time    `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool          `bson:"current" json:"current"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
}

type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

type Profile struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         bson.ObjectID `bson:"user" json:"user"`
	Company        string        `bson:"company,omitempty" json:"company,omitempty"`
	Website        string        `bson:"website,omitempty" json:"website,omitempty"`
	Location       string        `bson:"location,omitempty" json:"location,omitempty"`
	Status         string        `bson:"status" json:"status"`
	Skills         []string      `bson:"skills" json:"skills"`
	Bio            string        `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string        `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Experience     []Experience  `bson:"experience" json:"experience"`
	Education      []Education   `bson:"education" json:"education"`
	Social         Social        `bson:"social,omitempty" json:"social,omitempty"`
	CreatedAt      time.Time     `bson:"date" json:"date"`
}

// Like marks one user's like on a post. A user appears at most once per post.
type Like struct {
	User bson.ObjectID `bson:"user" json:"user"`
}

// Post embeds the author's name and avatar at creation time so the feed can
// render without joining back to users.
type Post struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user" json:"user"`
	Text      string        `bson:"text" json:"text"`
	Name      string        `bson:"name" json:"name"`
	Avatar    string        `bson:"avatar" json:"avatar"`
	Likes     []Like        `bson:"likes" json:"likes"`
	CreatedAt time.Time     `bson:"date" json:"date"`
}
