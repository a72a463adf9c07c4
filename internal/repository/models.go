package repository

// Models lists every row type for schema migration.
func Models() []any {
	return []any{
		&userModel{},
		&verificationCodeModel{},
		&propertyModel{},
		&bookingModel{},
		&favoriteModel{},
		&conversationModel{},
		&messageModel{},
		&reviewModel{},
	}
}
