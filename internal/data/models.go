package data

import "database/sql"

type Models struct {
	Venues *VenueModel
	Events *EventModel
	Users  UserModel
	Tokens TokenModel
}

func NewModels(initDb *sql.DB) Models {
	return Models{
		Venues: NewVenueModel(initDb),
		Events: NewEventModel(initDb),
		Users:  UserModel{db: initDb},
		Tokens: TokenModel{db: initDb},
	}
}
