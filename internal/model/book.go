package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is the persisted inventory record. PublishedYear is stored as text:
// callers send values like "1965" and the store keeps them verbatim.
type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Author        string             `bson:"author" json:"author"`
	PublishedYear string             `bson:"publishedYear" json:"publishedYear"`
	Price         float64            `bson:"price" json:"price"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MissingFields reports which of the required text fields are absent or
// blank. Price is not listed here: a zero price is a valid price, and
// presence of the field itself is enforced at the request-binding layer.
func (b *Book) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(b.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(b.Author) == "" {
		missing = append(missing, "author")
	}
	if strings.TrimSpace(b.PublishedYear) == "" {
		missing = append(missing, "publishedYear")
	}
	return missing
}
