package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spinwin/internal/utils"
)

// Login is a dashboard account. Its routeName registers the route as valid
// and binds the account to it; "all" grants every route.
type Login struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Password  string             `json:"-" bson:"password"`
	RouteName string             `json:"routeName" bson:"routeName"`
}

// DisplayRouteName is the stored route, defaulting to "all".
func (l *Login) DisplayRouteName() string {
	if l.RouteName == "" {
		return utils.AllRoutes
	}
	return l.RouteName
}

// LoginUser is what the login endpoint reports about an account.
type LoginUser struct {
	Username         string `json:"username"`
	RouteName        string `json:"routeName"`
	DisplayRouteName string `json:"displayRouteName"`
}

type LoginResponse struct {
	User      LoginUser `json:"user"`
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
}
