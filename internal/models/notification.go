package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationAdminFeed is the userId of the shared admin-broadcast feed.
const NotificationAdminFeed = "admin"

// Notification is a single feed entry. UserID holds the hex id of the owning
// user, or NotificationAdminFeed for entries visible to every admin.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Href        string             `bson:"href,omitempty" json:"href,omitempty"`
	IsRead      bool               `bson:"isRead" json:"isRead"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
